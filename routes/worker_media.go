package routes

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"local-services-server/database"
	"local-services-server/models"
)

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// RegisterWorkerMediaRoutes adds verification document upload endpoints on an
// authenticated group. Uploaded photos feed the admin verification queue.
func RegisterWorkerMediaRoutes(rg *gin.RouterGroup) {
	rg.POST("/workers/profile/photos", uploadWorkerPhotos)
}

func uploadWorkerPhotos(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil { // 10MB
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid form data"})
		return
	}

	profileHeader, _ := c.FormFile("profile_photo")
	idHeader, _ := c.FormFile("id_card_photo")

	if profileHeader == nil && idHeader == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No files provided"})
		return
	}

	if profileHeader != nil && !validateImageFile(profileHeader) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid profile photo"})
		return
	}
	if idHeader != nil && !validateImageFile(idHeader) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid ID card photo"})
		return
	}

	var wp models.WorkerProfile
	if err := database.DB.Where("user_id = ?", userID).First(&wp).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Worker profile not found"})
		return
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Printf("❌ Cloudinary environment variables not set")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cloudinary not configured"})
		return
	}

	cld, err := cloudinary.NewFromURL(fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName))
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cloudinary initialization failed"})
		return
	}

	ctx := c.Request.Context()
	data := gin.H{}

	upload := func(header *multipart.FileHeader, folder string) (string, error) {
		file, err := header.Open()
		if err != nil {
			return "", err
		}
		defer file.Close()
		ow := true
		uf := true
		up, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
			Folder:         folder,
			PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
			Overwrite:      &ow,
			UniqueFilename: &uf,
			ResourceType:   "image",
		})
		if err != nil {
			return "", err
		}
		return up.SecureURL, nil
	}

	base := "workers/" + strconv.Itoa(int(userID))

	if profileHeader != nil {
		url, err := upload(profileHeader, base+"/profile_photos")
		if err != nil {
			log.Printf("❌ Profile photo upload failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Profile upload failed"})
			return
		}
		wp.ProfilePhoto = &url
		data["profile_photo_url"] = url
	}
	if idHeader != nil {
		url, err := upload(idHeader, base+"/id_cards")
		if err != nil {
			log.Printf("❌ ID card photo upload failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID card upload failed"})
			return
		}
		wp.IDCardPhoto = &url
		data["id_card_photo_url"] = url
	}

	// New documents reset the verification review
	wp.VerificationStatus = models.VerificationPending
	wp.UpdatedAt = time.Now()
	if err := database.DB.Save(&wp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save profile"})
		return
	}

	log.Printf("✅ Verification documents uploaded for user %d", userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
