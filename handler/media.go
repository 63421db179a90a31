package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/helper"
	"canteen_hub/model"
	"canteen_hub/utils"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// GenerateSignature ký params để client upload thẳng lên Cloudinary
func GenerateSignature(c *fiber.Ctx) error {
	_, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	type SigParams struct {
		Folder       string `json:"folder"`
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"` // Parse but don't sign
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Params không hợp lệ", err)
	}

	timestamp := time.Now().Unix()
	timestampStr := fmt.Sprintf("%d", timestamp)

	// Collect signable parameters as map (exclude resource_type, api_key, etc.)
	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder // Raw value, no escape
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID // Raw value
	}
	paramMap["timestamp"] = timestampStr // Always include

	// Sort keys alphabetically
	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Build stringToSign manually (raw values, no URL encoding)
	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	// Compute SHA1 hash
	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadMenuItemImage upload ảnh món ăn qua server, gán vào món :id
func UploadMenuItemImage(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	itemId := c.Locals("inputId").(int)

	var item model.MenuItem
	if err := database.DB.First(&item, itemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Món không tồn tại", err)
	}
	if isOwner && (claim.StallId == nil || *claim.StallId != item.StallId) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu file ảnh", err)
	}
	if err := validateImageFile(file); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	f, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể mở file", err)
	}
	defer f.Close()

	cld := helper.InitCloudinary()
	uploadResult, err := cld.Upload.Upload(context.Background(), f, uploader.UploadParams{
		Folder:       "canteen/menu",
		PublicID:     fmt.Sprintf("menu_%d_%d", item.ID, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Upload Cloudinary thất bại", err)
	}

	item.ImageUrl = &uploadResult.SecureURL
	if err := database.DB.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

// UploadStallImage upload ảnh đại diện cho gian hàng :id
func UploadStallImage(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	stallId := c.Locals("inputId").(int)

	var stall model.Stall
	if err := database.DB.First(&stall, stallId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Gian hàng không tồn tại", err)
	}
	if isOwner && (claim.StallId == nil || *claim.StallId != stall.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu file ảnh", err)
	}
	if err := validateImageFile(file); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	f, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể mở file", err)
	}
	defer f.Close()

	cld := helper.InitCloudinary()
	uploadResult, err := cld.Upload.Upload(context.Background(), f, uploader.UploadParams{
		Folder:       "canteen/stalls",
		PublicID:     fmt.Sprintf("stall_%d_%d", stall.ID, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Upload Cloudinary thất bại", err)
	}

	stall.ImageUrl = &uploadResult.SecureURL
	if err := database.DB.Save(&stall).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, stall)
}

func validateImageFile(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return fmt.Errorf("chỉ hỗ trợ JPG, PNG, WEBP")
	}
	if file.Size > 5*1024*1024 {
		return fmt.Errorf("file vượt quá 5MB")
	}
	return nil
}
