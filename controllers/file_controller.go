package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/karmakarsharmila40/idea-publishing-platform/config"
	"github.com/karmakarsharmila40/idea-publishing-platform/models"
	"github.com/karmakarsharmila40/idea-publishing-platform/utils"
)

// FileController stores uploaded files on disk and maintains the attachment
// references embedded in ideas.
type FileController struct {
	ideas IdeaStore
}

// NewFileController creates a FileController backed by the given store.
func NewFileController(ideas IdeaStore) *FileController {
	return &FileController{ideas: ideas}
}

// UploadFile saves a multipart file and appends its reference to the idea.
// Only the idea owner may attach files.
func (f *FileController) UploadFile(ctx *gin.Context) {
	ideaID, ok := parseIDParam(ctx, "ideaId", "Idea not found")
	if !ok {
		return
	}
	userID, ok := actingUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	cfg := config.Get()
	maxSize := int64(cfg.UploadMaxSizeMB) * 1024 * 1024
	if header.Size > 0 && header.Size > maxSize {
		utils.Fail(ctx, http.StatusBadRequest, fmt.Sprintf("File size exceeds %dMB", cfg.UploadMaxSizeMB))
		return
	}

	now := time.Now()
	baseDir := filepath.Join(cfg.UploadDir, now.Format("2006"), now.Format("01"), now.Format("02"))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		utils.ServerError(ctx)
		return
	}

	name := filepath.Base(header.Filename)
	if name == "." || name == "" {
		name = fmt.Sprintf("file_%d", now.UnixNano())
	}
	fileID := uuid.NewString()
	dstPath := filepath.Join(baseDir, fileID+"_"+name)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.ServerError(ctx)
		return
	}
	defer out.Close()

	written, err := io.Copy(out, &io.LimitedReader{R: file, N: maxSize + 1})
	if err != nil || written > maxSize {
		_ = out.Close()
		_ = os.Remove(dstPath)
		if err != nil {
			utils.ServerError(ctx)
			return
		}
		utils.Fail(ctx, http.StatusBadRequest, fmt.Sprintf("File size exceeds %dMB", cfg.UploadMaxSizeMB))
		return
	}

	att := models.Attachment{
		FileID:     fileID,
		FileName:   name,
		FileURL:    "/" + filepath.ToSlash(dstPath),
		FileType:   fileType(header.Header.Get("Content-Type"), name),
		UploadDate: now.UTC(),
	}

	attachments, err := f.ideas.AddAttachment(ctx.Request.Context(), ideaID, userID, att)
	if err != nil {
		_ = os.Remove(dstPath)
		respondStoreError(ctx, err)
		return
	}
	utils.OK(ctx, attachments)
}

// DeleteFile removes an attachment reference and unlinks the stored file.
func (f *FileController) DeleteFile(ctx *gin.Context) {
	ideaID, ok := parseIDParam(ctx, "ideaId", "Idea not found")
	if !ok {
		return
	}
	fileID := strings.TrimSpace(ctx.Param("fileId"))
	if fileID == "" {
		utils.Fail(ctx, http.StatusNotFound, "Attachment not found")
		return
	}
	userID, ok := actingUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
		return
	}

	removed, attachments, err := f.ideas.RemoveAttachment(ctx.Request.Context(), ideaID, fileID, userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	// Unlink is best effort; the store is already consistent.
	if path := strings.TrimPrefix(removed.FileURL, "/"); path != "" {
		if err := os.Remove(filepath.FromSlash(path)); err != nil && !os.IsNotExist(err) {
			if utils.Sugar != nil {
				utils.Sugar.Warnf("failed to remove attachment file %s: %v", path, err)
			}
		}
	}
	utils.OK(ctx, attachments)
}

func fileType(contentType, name string) string {
	if contentType != "" {
		return contentType
	}
	if ext := filepath.Ext(name); ext != "" {
		return strings.TrimPrefix(ext, ".")
	}
	return "application/octet-stream"
}
