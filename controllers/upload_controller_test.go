package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amara-chambers/amara-law-api/config"
	"github.com/amara-chambers/amara-law-api/models"
	"github.com/amara-chambers/amara-law-api/services"
)

func multipartImageBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadBlogImage(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()
	defer services.SetS3Service(nil)

	lawyer := seedUser(t, db, "auth0|lawyer", "Lawyer", "lawyer@amara.law", "lawyer")
	blog := seedBlog(t, db, models.Blog{LawyerID: lawyer.ID, Status: models.BlogPending})

	router := setupTestRouter()
	router.POST("/blogs/my-blogs/:id/image", mockAuthMiddleware(lawyer.Auth0ID, "lawyer", "token"), UploadBlogImage)

	body, contentType := multipartImageBody(t, "image", "cover.png", []byte("png-bytes"))
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/blogs/my-blogs/%d/image", blog.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "blog-images/mock_cover.png", data["image"])
	assert.Contains(t, data["image_url"], "blog-images/mock_cover.png")
	assert.True(t, mockS3.FileExists("blog-images/mock_cover.png"))
}

func TestUploadBlogImage_ReplacesOldImage(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()
	defer services.SetS3Service(nil)

	lawyer := seedUser(t, db, "auth0|lawyer", "Lawyer", "lawyer@amara.law", "lawyer")
	blog := seedBlog(t, db, models.Blog{LawyerID: lawyer.ID, Status: models.BlogPending})

	router := setupTestRouter()
	router.POST("/blogs/my-blogs/:id/image", mockAuthMiddleware(lawyer.Auth0ID, "lawyer", "token"), UploadBlogImage)

	for _, filename := range []string{"first.png", "second.png"} {
		body, contentType := multipartImageBody(t, "image", filename, []byte("png-bytes"))
		req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/blogs/my-blogs/%d/image", blog.ID), body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// The replaced object was removed from storage
	assert.False(t, mockS3.FileExists("blog-images/mock_first.png"))
	assert.True(t, mockS3.FileExists("blog-images/mock_second.png"))

	var stored models.Blog
	db.First(&stored, blog.ID)
	assert.Equal(t, "blog-images/mock_second.png", *stored.Image)
}

func TestUploadBlogImage_Errors(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()
	defer services.SetS3Service(nil)

	lawyer := seedUser(t, db, "auth0|lawyer", "Lawyer", "lawyer@amara.law", "lawyer")
	other := seedUser(t, db, "auth0|other", "Other Lawyer", "other@amara.law", "lawyer")
	pending := seedBlog(t, db, models.Blog{LawyerID: lawyer.ID, Status: models.BlogPending})
	approved := seedBlog(t, db, models.Blog{LawyerID: lawyer.ID, Status: models.BlogApproved})
	othersBlog := seedBlog(t, db, models.Blog{LawyerID: other.ID, Status: models.BlogPending})

	router := setupTestRouter()
	router.POST("/blogs/my-blogs/:id/image", mockAuthMiddleware(lawyer.Auth0ID, "lawyer", "token"), UploadBlogImage)

	tests := []struct {
		name           string
		blogID         uint
		filename       string
		omitFile       bool
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Approved post cannot receive an image",
			blogID:         approved.ID,
			filename:       "cover.png",
			expectedStatus: http.StatusNotFound,
			expectedError:  "BLOG_NOT_FOUND",
		},
		{
			name:           "Another lawyer's post looks not found",
			blogID:         othersBlog.ID,
			filename:       "cover.png",
			expectedStatus: http.StatusNotFound,
			expectedError:  "BLOG_NOT_FOUND",
		},
		{
			name:           "Missing file",
			blogID:         pending.ID,
			omitFile:       true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Wrong format",
			blogID:         pending.ID,
			filename:       "cover.gif",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_FILE_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.omitFile {
				req, _ = http.NewRequest(http.MethodPost, fmt.Sprintf("/blogs/my-blogs/%d/image", tt.blogID), nil)
			} else {
				body, contentType := multipartImageBody(t, "image", tt.filename, []byte("bytes"))
				req, _ = http.NewRequest(http.MethodPost, fmt.Sprintf("/blogs/my-blogs/%d/image", tt.blogID), body)
				req.Header.Set("Content-Type", contentType)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)
			errorData := response["error"].(map[string]interface{})
			assert.Equal(t, tt.expectedError, errorData["code"])
		})
	}
}
