package Controllers

import (
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// saveUploadedFile stores a multipart file under dir with a uuid name and
// returns the relative path used for static serving.
func saveUploadedFile(c *fiber.Ctx, file *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	path := filepath.Join(dir, name)
	if err := c.SaveFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

// saveVehicleImage stores the original upload and writes a resized
// thumbnail next to it.
func saveVehicleImage(c *fiber.Ctx, file *multipart.FileHeader, dir string) (string, error) {
	path, err := saveUploadedFile(c, file, dir)
	if err != nil {
		return "", err
	}

	img, err := imaging.Open(path)
	if err != nil {
		// Not an image we can decode; keep the original only
		log.Printf("Error decoding uploaded image %s: %v", path, err)
		return path, nil
	}

	thumb := imaging.Resize(img, 480, 0, imaging.Lanczos)
	thumbPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_thumb.jpg"
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Printf("Error saving thumbnail for %s: %v", path, err)
	}
	return path, nil
}

// removeStoredFile deletes a previously uploaded file. Failures are logged
// and swallowed; a stale file on disk never fails the request.
func removeStoredFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		log.Printf("Error removing file %s: %v", path, err)
	}
	thumb := strings.TrimSuffix(path, filepath.Ext(path)) + "_thumb.jpg"
	if _, err := os.Stat(thumb); err == nil {
		if err := os.Remove(thumb); err != nil {
			log.Printf("Error removing thumbnail %s: %v", thumb, err)
		}
	}
}
