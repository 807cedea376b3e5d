package inventory

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// jsonError writes a JSON error body with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// handleScanReceipt accepts a receipt image upload and returns the
// extraction result. Extraction failures still produce a 200: the failure is
// inside the result envelope and the client offers manual entry instead.
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	// 50MB cap to handle high-resolution phone photos
	maxFormSize := int64(50 << 20)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "File is too large. Maximum size is 50MB. Please compress or resize your image."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		errorMsg := "No file provided"
		if err.Error() == "http: no such file" {
			errorMsg = "No file was selected. Please choose a file to upload."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}
	defer f.Close()

	if header.Size > maxFormSize {
		jsonError(w, "File is too large. Maximum size is 50MB. Please compress or resize your image.", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeFromExtension(header.Filename)
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	scan, err := s.service.ScanReceipt(header.Filename, data, contentType)
	if err != nil {
		slog.Error("Error scanning receipt", "filename", header.Filename, "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(scan); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// contentTypeFromExtension guesses a MIME type when the upload carries none
func contentTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleGetScan returns a single receipt scan
func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Scan ID required", http.StatusBadRequest)
		return
	}
	scan, err := s.service.GetScan(id)
	if err != nil {
		corsError(w, "Scan not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(scan); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleListScans returns all receipt scans
func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	scans, err := s.service.ListScans()
	if err != nil {
		slog.Error("Error listing scans", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(scans); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetScanImage returns the stored image for a scan
func (s *Server) handleGetScanImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Scan ID required", http.StatusBadRequest)
		return
	}
	data, contentType, err := s.service.GetScanImage(id)
	if err != nil {
		corsError(w, "Image not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteScan deletes a scan and its stored image
func (s *Server) handleDeleteScan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Scan ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteScan(id); err != nil {
		corsError(w, "Error deleting scan", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleCreateProduct creates a product from manual entry or a selected candidate
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var data CreateProductData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := s.service.CreateProduct(data)
	if err != nil {
		slog.Error("Error creating product", "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(product); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleListProducts returns products matching the query filters
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	filters := ProductFilters{
		Status:       ProductStatus(r.URL.Query().Get("status")),
		Search:       r.URL.Query().Get("search"),
		ExpiringOnly: r.URL.Query().Get("expiring") == "true",
	}

	products, err := s.service.ListProducts(filters)
	if err != nil {
		slog.Error("Error listing products", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(products); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetProduct returns a single product
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Product ID required", http.StatusBadRequest)
		return
	}
	product, err := s.service.GetProduct(id)
	if err != nil {
		corsError(w, "Product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(product); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleUpdateProduct applies a partial update to a product
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Product ID required", http.StatusBadRequest)
		return
	}

	var data UpdateProductData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := s.service.UpdateProduct(id, data)
	if err != nil {
		slog.Error("Error updating product", "id", id, "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(product); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleDeleteProduct deletes a product
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Product ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteProduct(id); err != nil {
		corsError(w, "Error deleting product", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleExportProducts returns the inventory as an XLSX attachment
func (s *Server) handleExportProducts(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.ExportWorkbook()
	if err != nil {
		slog.Error("Error exporting products", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.xlsx"`)
	w.Write(data)
}
