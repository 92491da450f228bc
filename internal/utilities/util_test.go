package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"my resume.pdf", "my_resume.pdf"},
		{"../../etc/passwd", "passwd"},
		{`..\..\windows\evil.pdf`, "evil.pdf"},
		{"résumé.pdf", "r_sum_.pdf"},
		{"UPPER-case_09.docx", "UPPER-case_09.docx"},
		{"...", ""},
		{"///", ""},
		{"", ""},
		{"..", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), "input %q", tc.in)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.True(t, VerifyPassword("correct horse battery staple", hashed))
	assert.False(t, VerifyPassword("wrong password", hashed))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("same input")
	assert.NoError(t, err)
	h2, err := HashPassword("same input")
	assert.NoError(t, err)
	assert.NotEqual(t, h1, h2, "bcrypt salts every hash")
}

func TestContains(t *testing.T) {
	extensions := []string{".pdf", ".doc", ".docx"}

	assert.True(t, Contains(extensions, ".pdf"))
	assert.True(t, Contains(extensions, ".docx"))
	assert.False(t, Contains(extensions, ".exe"))
	assert.False(t, Contains(nil, ".pdf"))
}
