package handlers

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"
)

// RoutesHandler lists registered routes, a diagnostic aid mirroring the
// service's deployed surface
type RoutesHandler struct {
	router *mux.Router
}

func NewRoutesHandler(router *mux.Router) *RoutesHandler {
	return &RoutesHandler{router: router}
}

func (h *RoutesHandler) HandleListRoutes(w http.ResponseWriter, r *http.Request) {
	var lines []string
	err := h.router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil // skip routes without a path template
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"ANY"}
		}
		lines = append(lines, fmt.Sprintf("%s (%s)", path, strings.Join(methods, ", ")))
		return nil
	})
	if err != nil {
		log.Printf("❌ Failed to walk routes: %v", err)
		http.Error(w, "failed to list routes", http.StatusInternalServerError)
		return
	}

	sort.Strings(lines)
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte(strings.Join(lines, "\n"))); err != nil {
		log.Printf("❌ Failed to write routes response: %v", err)
	}
}

func (h *RoutesHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/routes", h.HandleListRoutes).Methods("GET")
	log.Printf("✅ GET /routes endpoint registered")
}
