package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
)

// NewRouter registers the record API routes.
func NewRouter(rh *RecordHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/save", rh.SaveRecord).Methods("POST")
	r.HandleFunc("/save/{id}", rh.UpdateRecord).Methods("PUT")
	r.HandleFunc("/delete/{id}", rh.DeleteRecord).Methods("DELETE")
	r.HandleFunc("/records", rh.ListRecords).Methods("GET")
	// Alias kept for clients that still call the old route.
	r.HandleFunc("/recover", rh.ListRecords).Methods("GET")
	r.HandleFunc("/export", rh.ExportRecords).Methods("GET")

	return r
}

// RegisterStatic mounts the optional collaborators of the full
// deployment variant: fixed JSON catalogs from dataDir and a static
// asset tree at the root. Empty paths leave the routes unregistered.
func RegisterStatic(r *mux.Router, staticDir, dataDir string) {
	if dataDir != "" {
		r.HandleFunc("/productos.json", serveJSONFile(filepath.Join(dataDir, "productos.json"))).Methods("GET")
		r.HandleFunc("/usuarios.json", serveJSONFile(filepath.Join(dataDir, "usuarios.json"))).Methods("GET")
	}

	if staticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir))).Methods("GET")
	}
}

func serveJSONFile(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, path)
	}
}
