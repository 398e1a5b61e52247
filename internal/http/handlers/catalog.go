package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cabzii/internal/services"
)

// Catalog handlers are generic over the resource (tour packages, vehicles,
// call-driver categories, cabs); the router mounts one set per resource.

func catalogResource(c *gin.Context) (services.Resource, bool) {
	r, ok := services.ResourceByName(c.Param("resource"))
	if !ok {
		respondError(c, http.StatusNotFound, "unknown_resource", "unknown catalog resource "+c.Param("resource"), nil)
	}
	return r, ok
}

// bindCatalogInput reads the parent payload. Plain JSON bodies carry data
// only; multipart bodies carry a "data" JSON field plus "images" files,
// which are stored before the service sees the input.
func bindCatalogInput(c *gin.Context) (services.CatalogInput, bool) {
	var in services.CatalogInput

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if raw := c.PostForm("data"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &in); err != nil {
				RespondError(c, http.StatusBadRequest, "invalid data field", err)
				return in, false
			}
		}
		paths, ok := saveUploads(c)
		if !ok {
			return in, false
		}
		if paths != nil {
			in.Images = paths
		}
		return in, true
	}

	if !BindJSONOrError(c, &in) {
		return in, false
	}
	return in, true
}

func bindChildInput(c *gin.Context) (services.ChildInput, bool) {
	var in services.ChildInput

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if raw := c.PostForm("data"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &in); err != nil {
				RespondError(c, http.StatusBadRequest, "invalid data field", err)
				return in, false
			}
		}
		paths, ok := saveUploads(c)
		if !ok {
			return in, false
		}
		if paths != nil {
			in.Images = paths
		}
		return in, true
	}

	if !BindJSONOrError(c, &in) {
		return in, false
	}
	return in, true
}

// saveUploads stores every "images" file and returns their public paths.
// Returns nil (not an empty slice) when the form carries no images, so
// updates without uploads leave the stored images untouched.
func saveUploads(c *gin.Context) ([]string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid multipart form", err)
		return nil, false
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, true
	}
	// reject oversized uploads before writing anything to disk
	if len(files) > 3 {
		RespondError(c, http.StatusBadRequest, "up to 3 images allowed", nil)
		return nil, false
	}

	d := getDeps()
	if d.Files == nil {
		RespondError(c, http.StatusInternalServerError, "file storage not configured", nil)
		return nil, false
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := d.Files.Save(fh)
		if err != nil {
			RespondDomainError(c, err)
			return nil, false
		}
		paths = append(paths, p)
	}
	return paths, true
}

func CreateCatalogEntry(c *gin.Context) {
	r, ok := catalogResource(c)
	if !ok {
		return
	}
	in, ok := bindCatalogInput(c)
	if !ok {
		return
	}

	p, err := catalogService(c, r).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": r.Name + " created", "data": p})
}

func ListCatalogEntries(c *gin.Context) {
	r, ok := catalogResource(c)
	if !ok {
		return
	}

	out, err := catalogService(c, r).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

// GetCatalogEntry resolves by custom ID first, then by slug, so both
// /tour/TOUR0001 and /tour/goa-beach-tour work.
func GetCatalogEntry(c *gin.Context) {
	r, ok := catalogResource(c)
	if !ok {
		return
	}

	svc := catalogService(c, r)
	key := c.Param("id")
	p, err := svc.Get(c.Request.Context(), key)
	if err != nil {
		p, err = svc.GetBySlug(c.Request.Context(), key)
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func UpdateCatalogEntry(c *gin.Context) {
	r, ok := catalogResource(c)
	if !ok {
		return
	}
	in, ok := bindCatalogInput(c)
	if !ok {
		return
	}

	p, err := catalogService(c, r).Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": r.Name + " updated", "data": p})
}

func DeleteCatalogEntry(c *gin.Context) {
	r, ok := catalogResource(c)
	if !ok {
		return
	}

	if err := catalogService(c, r).Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": r.Name + " deleted"})
}

func AddCatalogChild(c *gin.Context) {
	r, ok := catalogResource(c)
	if !ok {
		return
	}
	in, ok := bindChildInput(c)
	if !ok {
		return
	}

	child, err := catalogService(c, r).AddChild(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "entry added", "data": child})
}

func UpdateCatalogChild(c *gin.Context) {
	r, ok := catalogResource(c)
	if !ok {
		return
	}
	in, ok := bindChildInput(c)
	if !ok {
		return
	}

	child, err := catalogService(c, r).UpdateChild(c.Request.Context(), c.Param("id"), c.Param("childId"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry updated", "data": child})
}

func RemoveCatalogChild(c *gin.Context) {
	r, ok := catalogResource(c)
	if !ok {
		return
	}

	if err := catalogService(c, r).RemoveChild(c.Request.Context(), c.Param("id"), c.Param("childId")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry removed"})
}
