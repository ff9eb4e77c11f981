package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/scholarassist/scholarassist/backend/go-services/internal/paper"
	"github.com/scholarassist/scholarassist/backend/go-services/internal/paper/service"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/apierrors"
)

const notFoundMessage = "Paper not found"

// paperRequest is the body accepted by create and update. Pointers let an
// empty string count as present; only absent fields are rejected.
type paperRequest struct {
	Title      *string   `json:"title" binding:"required"`
	Content    *string   `json:"content" binding:"required"`
	References []*string `json:"references"`
}

// nullReferences reports every null element of references; each one must be
// a string.
func (r paperRequest) nullReferences() []apierrors.FieldError {
	var fields []apierrors.FieldError
	for i, ref := range r.References {
		if ref == nil {
			fields = append(fields, apierrors.FieldError{
				Loc:  []string{"body", "references", strconv.Itoa(i)},
				Msg:  "Input should be a valid string",
				Type: "string_type",
			})
		}
	}
	return fields
}

func (r paperRequest) fields() paper.Fields {
	var refs []string
	if r.References != nil {
		refs = make([]string, len(r.References))
		for i, ref := range r.References {
			refs[i] = *ref
		}
	}
	return paper.Fields{Title: *r.Title, Content: *r.Content, References: refs}
}

func bindPaper(c *gin.Context) (paper.Fields, bool) {
	var req paperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		verr := apierrors.FromBindError(err)
		zerolog.Ctx(c.Request.Context()).Info().Err(verr).Msg("rejected paper body")
		apierrors.HandleError(c, verr)
		return paper.Fields{}, false
	}
	if bad := req.nullReferences(); len(bad) > 0 {
		zerolog.Ctx(c.Request.Context()).Info().Int("null_references", len(bad)).Msg("rejected paper body")
		apierrors.HandleError(c, apierrors.NewValidation(bad...))
		return paper.Fields{}, false
	}
	return req.fields(), true
}

func handleServiceError(c *gin.Context, id string, err error) {
	if errors.Is(err, service.ErrNotFound) {
		zerolog.Ctx(c.Request.Context()).Debug().Str("paper_id", id).Msg("paper not found")
		apierrors.HandleError(c, apierrors.NewNotFound(notFoundMessage))
		return
	}
	apierrors.HandleError(c, err)
}

// RegisterPaperRoutes mounts the paper CRUD endpoints under /api/papers.
func RegisterPaperRoutes(r gin.IRouter, svc service.Service) {
	g := r.Group("/api/papers")

	g.GET("", func(c *gin.Context) {
		list, err := svc.List()
		if err != nil {
			apierrors.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	g.POST("", func(c *gin.Context) {
		f, ok := bindPaper(c)
		if !ok {
			return
		}
		p, err := svc.Create(f)
		if err != nil {
			apierrors.HandleError(c, err)
			return
		}
		zerolog.Ctx(c.Request.Context()).Debug().Str("paper_id", p.ID).Msg("paper created")
		c.JSON(http.StatusOK, p)
	})

	g.GET("/:id", func(c *gin.Context) {
		id := c.Param("id")
		p, err := svc.Get(id)
		if err != nil {
			handleServiceError(c, id, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	// PUT is a full replace; the id in the path wins over anything in the body.
	g.PUT("/:id", func(c *gin.Context) {
		id := c.Param("id")
		f, ok := bindPaper(c)
		if !ok {
			return
		}
		p, err := svc.Update(id, f)
		if err != nil {
			handleServiceError(c, id, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		id := c.Param("id")
		if err := svc.Delete(id); err != nil {
			handleServiceError(c, id, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Paper deleted"})
	})
}
