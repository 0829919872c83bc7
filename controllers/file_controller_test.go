package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/karmakarsharmila40/idea-publishing-platform/models"
	"github.com/karmakarsharmila40/idea-publishing-platform/repositories"
)

func newFileEngine(ideas IdeaStore, userID primitive.ObjectID) *gin.Engine {
	fc := NewFileController(ideas)
	r := gin.New()
	authed := r.Group("/api", asUser(userID))
	authed.POST("/files/:ideaId", fc.UploadFile)
	authed.DELETE("/files/:ideaId/:fileId", fc.DeleteFile)
	return r
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadFileStoresAttachment(t *testing.T) {
	chdirTemp(t)

	userID := primitive.NewObjectID()
	ideaID := primitive.NewObjectID()
	var saved models.Attachment
	ideas := &fakeIdeaStore{
		addAttachment: func(gotIdea, actorID primitive.ObjectID, att models.Attachment) ([]models.Attachment, error) {
			if gotIdea != ideaID || actorID != userID {
				t.Errorf("addAttachment(%s, %s)", gotIdea.Hex(), actorID.Hex())
			}
			saved = att
			return []models.Attachment{att}, nil
		},
	}
	r := newFileEngine(ideas, userID)

	body, contentType := multipartUpload(t, "file", "pitch.txt", []byte("solar roads"))
	req := httptest.NewRequest(http.MethodPost, "/api/files/"+ideaID.Hex(), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	wantStatus(t, w, http.StatusOK)
	if saved.FileID == "" {
		t.Fatal("attachment has no file id")
	}
	if saved.FileName != "pitch.txt" {
		t.Errorf("got file name %q", saved.FileName)
	}
	onDisk := filepath.FromSlash(strings.TrimPrefix(saved.FileURL, "/"))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "solar roads" {
		t.Errorf("stored content %q", data)
	}
}

func TestUploadFileMissingPart(t *testing.T) {
	r := newFileEngine(&fakeIdeaStore{}, primitive.NewObjectID())

	body, contentType := multipartUpload(t, "wrongfield", "pitch.txt", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/files/"+primitive.NewObjectID().Hex(), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	wantMsg(t, w, http.StatusBadRequest, "No file uploaded")
}

func TestUploadFileNotOwnerCleansUp(t *testing.T) {
	chdirTemp(t)

	ideas := &fakeIdeaStore{
		addAttachment: func(ideaID, actorID primitive.ObjectID, att models.Attachment) ([]models.Attachment, error) {
			return nil, repositories.ErrNotOwner
		},
	}
	r := newFileEngine(ideas, primitive.NewObjectID())

	body, contentType := multipartUpload(t, "file", "pitch.txt", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/files/"+primitive.NewObjectID().Hex(), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	wantMsg(t, w, http.StatusUnauthorized, "User not authorized")
}

func TestDeleteFileUnlinksAndReturnsRemaining(t *testing.T) {
	chdirTemp(t)
	stored := filepath.Join("uploads", "2026", "08", "30", "abc_pitch.txt")
	if err := os.MkdirAll(filepath.Dir(stored), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(stored, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ideas := &fakeIdeaStore{
		removeAttachment: func(ideaID primitive.ObjectID, fileID string, actorID primitive.ObjectID) (*models.Attachment, []models.Attachment, error) {
			if fileID != "abc" {
				t.Errorf("got file id %q", fileID)
			}
			removed := &models.Attachment{FileID: fileID, FileURL: "/" + filepath.ToSlash(stored)}
			return removed, []models.Attachment{}, nil
		},
	}
	r := newFileEngine(ideas, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodDelete, "/api/files/"+primitive.NewObjectID().Hex()+"/abc", nil)
	wantStatus(t, w, http.StatusOK)
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Errorf("stored file still present (stat err %v)", err)
	}
}

func TestDeleteFileUnknownAttachment(t *testing.T) {
	ideas := &fakeIdeaStore{
		removeAttachment: func(ideaID primitive.ObjectID, fileID string, actorID primitive.ObjectID) (*models.Attachment, []models.Attachment, error) {
			return nil, nil, repositories.ErrAttachmentNotFound
		},
	}
	r := newFileEngine(ideas, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodDelete, "/api/files/"+primitive.NewObjectID().Hex()+"/zzz", nil)
	wantMsg(t, w, http.StatusNotFound, "Attachment not found")
}
