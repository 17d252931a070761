package controllers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
)

const (
	maxFileSize       = 5 * 1024 * 1024
	compressThreshold = 1 * 1024 * 1024
	previewSize       = 300
	wastePhotoDir     = "./uploads/waste-products"
)

// SaveWastePhoto stores a waste-product photo plus a 300px thumbnail
// under the uploads dir and returns both filenames. Photos above the
// compress threshold are resized to 800px wide and re-encoded.
func SaveWastePhoto(c *gin.Context, file *multipart.FileHeader, productID string) (string, string, error) {
	if file.Size > maxFileSize {
		return "", "", fmt.Errorf("file size exceeds the 5MB limit")
	}

	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	if fileExt != ".jpg" && fileExt != ".jpeg" && fileExt != ".png" {
		return "", "", fmt.Errorf("unsupported file format: %s", fileExt)
	}

	if _, err := os.Stat(wastePhotoDir); os.IsNotExist(err) {
		if err := os.MkdirAll(wastePhotoDir, os.ModePerm); err != nil {
			return "", "", fmt.Errorf("failed to create upload directory: %v", err)
		}
	}

	baseName := fmt.Sprintf("%s_%d", productID, time.Now().Unix())
	filename := baseName + fileExt
	previewFilename := baseName + "_preview.jpg"
	fullPath := filepath.Join(wastePhotoDir, filename)
	previewPath := filepath.Join(wastePhotoDir, previewFilename)

	srcFile, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer srcFile.Close()

	var img image.Image
	if fileExt == ".png" {
		img, err = png.Decode(srcFile)
	} else {
		img, err = jpeg.Decode(srcFile)
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %v", err)
	}

	if file.Size > compressThreshold {
		compressedImg := resize.Resize(800, 0, img, resize.Lanczos3)

		outFile, err := os.Create(fullPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to create file: %v", err)
		}
		defer outFile.Close()

		if err := jpeg.Encode(outFile, compressedImg, &jpeg.Options{Quality: 80}); err != nil {
			return "", "", fmt.Errorf("failed to save compressed image: %v", err)
		}
	} else {
		if err := c.SaveUploadedFile(file, fullPath); err != nil {
			return "", "", fmt.Errorf("failed to save photo: %v", err)
		}
	}

	previewImg := resize.Thumbnail(previewSize, previewSize, img, resize.Lanczos3)
	previewFile, err := os.Create(previewPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create preview file: %v", err)
	}
	defer previewFile.Close()

	if err := jpeg.Encode(previewFile, previewImg, &jpeg.Options{Quality: 75}); err != nil {
		return "", "", fmt.Errorf("failed to save preview image: %v", err)
	}

	return filename, previewFilename, nil
}

// removeWastePhoto deletes a stored photo file if it exists.
func removeWastePhoto(filename string) {
	if filename == "" {
		return
	}
	photoPath := filepath.Join(wastePhotoDir, filepath.Base(filename))
	if _, err := os.Stat(photoPath); err == nil {
		os.Remove(photoPath)
	}
}
