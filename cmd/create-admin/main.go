// Command-line tool to create an admin account interactively.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	value, _ := reader.ReadString('\n')
	return strings.TrimSpace(value)
}

func main() {

	fmt.Println("Generating admin account")

	reader := bufio.NewReader(os.Stdin)

	username := prompt(reader, "Enter username: ")
	email := prompt(reader, "Enter email: ")
	password1 := prompt(reader, "Enter password: ")
	password2 := prompt(reader, "Confirm password: ")

	if password1 != password2 {
		fmt.Println("Passwords do not match.")
		os.Exit(1)
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}

	existing := model.User{}
	err = db.Where("email = ? OR username = ?", email, username).First(&existing).Error
	if err == nil {
		fmt.Println("Username or email already taken")
		os.Exit(1)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check existing accounts: %s", err)
	}

	if err := utilities.CreateAdmin(username, email, password1, db.DB); err != nil {
		log.Fatalf("Failed to create admin: %s", err)
	}

	fmt.Println("Admin account created successfully!")
	fmt.Println("======================================")
	fmt.Printf("Username: %s\n", username)
	fmt.Printf("Email: %s\n", email)
	fmt.Println("======================================")
}
