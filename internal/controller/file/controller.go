package file

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/utilities"
)

// FileController handles resume download endpoints
type FileController struct {
	Storage StorageClient
}

// NewFileController creates a new instance of FileController
func NewFileController(storage StorageClient) *FileController {
	return &FileController{
		Storage: storage,
	}
}

// GetFile retrieves an uploaded resume by its sanitized filename and sends it
// as a downloadable attachment.
// @Summary Retrieve an uploaded resume
// @Tags File
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param name path string true "Sanitized filename of the wanted resume"
// @Success 200 {string} binary "Successfully retrieve file"
// @Failure 400 {object} utilities.ErrorResponse "Invalid filename"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Given filename not found"
// @Failure 500 {object} utilities.ErrorResponse "Fail to send file content"
// @Router /file/{name} [get]
func (fc *FileController) GetFile(c *gin.Context) {
	name := utilities.SanitizeFilename(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid filename"})
		return
	}

	reader, size, err := fc.Storage.DownloadFile(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, storage.ErrObjectNotExist) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return
	}
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("failed to close storage reader: %v", err)
		}
	}()

	c.Writer.Header().Set("Content-Disposition", "attachment; filename="+name)
	c.Writer.Header().Set("Content-Type", "application/octet-stream")
	if size > 0 {
		c.Writer.Header().Set("Content-Length", fmt.Sprint(size))
	}

	if _, err := io.Copy(c.Writer, reader); err != nil {
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Failed to send file content",
			})
		} else {
			c.Abort()
		}
	}
}
