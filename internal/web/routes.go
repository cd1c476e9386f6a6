package web

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kozaktomas/event-gallery/internal/gallery"
	"github.com/kozaktomas/event-gallery/internal/web/handlers"
)

func (s *Server) setupRoutes(engine *gallery.Engine) {
	indexHandler := handlers.NewIndexHandler(engine)
	matchHandler := handlers.NewMatchHandler(engine)
	photosHandler := handlers.NewPhotosHandler(engine)
	uploadHandler := handlers.NewUploadHandler(engine)
	statusHandler := handlers.NewStatusHandler(engine)

	s.router.Get("/", handlers.Root)
	s.router.Get("/health", statusHandler.Health)
	s.router.Get("/status", statusHandler.Status)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Post("/index", indexHandler.Index)
	s.router.Post("/match", matchHandler.Match)
	s.router.Get("/list-photos", photosHandler.List)
	s.router.Get("/download-photo", photosHandler.Download)
	s.router.Post("/upload-photo", uploadHandler.Upload)

	s.router.Post("/demo/reset", statusHandler.Reset)
}
