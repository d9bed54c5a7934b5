package gallery

import (
	"errors"
	"net/http"

	"github.com/Pjt727/roster/server/components"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

const maxUploadSize = 10 << 20

type galleryHandler struct {
	storage *LocalStorage
	logger  *log.Entry
}

// PopulateGalleryRoutes expects to be called on a router that already requires a login
func PopulateGalleryRoutes(r *chi.Router, storage *LocalStorage, logger *log.Entry) {
	h := galleryHandler{
		storage: storage,
		logger:  logger.WithField("area", "gallery"),
	}
	(*r).Get("/images", h.images)
	(*r).Get("/images/add", h.addImageView)
	(*r).With(middleware.AllowContentType("multipart/form-data")).Post("/images/add", h.addImage)
}

func (h *galleryHandler) images(w http.ResponseWriter, r *http.Request) {
	images, err := h.storage.List()
	if err != nil {
		h.logger.WithError(err).Error("Could not list images")
		images = nil
	}
	components.Render(w, r, h.logger, components.Images(images))
}

func (h *galleryHandler) addImageView(w http.ResponseWriter, r *http.Request) {
	components.Render(w, r, h.logger, components.AddImage())
}

func (h *galleryHandler) addImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("imageFile")
	if errors.Is(err, http.ErrMissingFile) {
		http.Redirect(w, r, "/images", http.StatusSeeOther)
		return
	} else if err != nil {
		h.logger.WithError(err).Warn("Could not read upload")
		http.Error(w, "unable to upload image", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if _, err := h.storage.Save(header.Filename, file); err != nil {
		h.logger.WithError(err).Error("Could not save upload")
		http.Error(w, "unable to upload image", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/images", http.StatusSeeOther)
}
