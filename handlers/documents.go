package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/marops/config"
	"p9e.in/marops/middleware"
	"p9e.in/marops/models"
)

const uploadDir = "./uploads" // Local directory for development storage

// useGCS reports whether uploads go to Google Cloud Storage.
// Cloud Run sets K_SERVICE; local development falls back to a
// directory served by the router.
func useGCS() bool {
	return os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""
}

// UploadBastpDocument stores a handover/acceptance file for a work
// order and records it. The resulting row is what gates invoice
// creation.
func UploadBastpDocument(w http.ResponseWriter, r *http.Request) {
	workOrderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid work order id", http.StatusBadRequest)
		return
	}
	var order models.WorkOrder
	if err := config.DB.First(&order, "id = ?", workOrderID).Error; err != nil {
		http.Error(w, "work order not found", http.StatusNotFound)
		return
	}

	// Parse the multipart form (max 50MB)
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	key := fmt.Sprintf("bastp/%s/%s-%s", workOrderID, time.Now().Format("20060102-150405"), header.Filename)

	if useGCS() {
		err = storeGCS(r.Context(), key, file)
	} else {
		err = storeLocal(key, file)
	}
	if err != nil {
		http.Error(w, "failed to store file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	doc := models.BastpDocument{
		WorkOrderID: workOrderID,
		FileName:    header.Filename,
		StorageKey:  key,
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   header.Size,
		UploadedBy:  middleware.GetUser(r).Name,
	}
	if err := config.DB.Create(&doc).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

func storeGCS(ctx context.Context, key string, src io.Reader) error {
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		return fmt.Errorf("GCS_BUCKET not configured")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	obj := client.Bucket(bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(obj, src); err != nil {
		_ = obj.Close()
		return fmt.Errorf("write to GCS: %w", err)
	}
	return obj.Close()
}

func storeLocal(key string, src io.Reader) error {
	path := filepath.Join(uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

// GetBastpDocumentURL returns a time-limited URL for one stored
// document: a 15-minute signed GCS URL in production, a local path in
// development.
func GetBastpDocumentURL(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var doc models.BastpDocument
	if err := config.DB.First(&doc, "id = ?", id).Error; err != nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

	var url string
	expires := time.Now().Add(15 * time.Minute)

	if useGCS() {
		bucket := os.Getenv("GCS_BUCKET")
		client, err := storage.NewClient(r.Context())
		if err != nil {
			http.Error(w, "storage client: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer client.Close()

		url, err = client.Bucket(bucket).SignedURL(doc.StorageKey, &storage.SignedURLOptions{
			Method:  http.MethodGet,
			Expires: expires,
			Scheme:  storage.SigningSchemeV4,
		})
		if err != nil {
			http.Error(w, "sign url: "+err.Error(), http.StatusInternalServerError)
			return
		}
	} else {
		url = "/uploads/" + doc.StorageKey
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"url":       url,
		"fileName":  doc.FileName,
		"expiresAt": expires.Format(time.RFC3339),
	})
}

func GetWorkOrderDocuments(w http.ResponseWriter, r *http.Request) {
	workOrderID := mux.Vars(r)["id"]
	var docs []models.BastpDocument
	if err := config.DB.Where("work_order_id = ?", workOrderID).
		Order("created_at DESC").Find(&docs).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}
