package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-contactform/internal/session"
	"github.com/goliatone/go-contactform/pkg/engine"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/validation"
)

type stateResponse struct {
	Values   engine.Values           `json:"values"`
	Errors   []validation.FieldError `json:"errors"`
	Snapshot *engine.Snapshot        `json:"snapshot,omitempty"`
}

type errorsResponse struct {
	Errors []validation.FieldError `json:"errors"`
}

type fieldValue struct {
	Value *string `json:"value" binding:"required"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleOpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", s.openapi)
}

func (s *Server) handleIndex(c *gin.Context) {
	sess := sessionFrom(c)

	var opts render.RenderOptions
	sess.With(func(e *engine.Engine) {
		opts = render.StateOf(e)
	})
	s.renderPage(c, http.StatusOK, opts)
}

// handleFormPost accepts the urlencoded HTML form, stores each posted field,
// and submits. The page is re-rendered with errors (422) or the echo (200).
func (s *Server) handleFormPost(c *gin.Context) {
	sess := sessionFrom(c)
	if !sess.CheckCSRF(c.PostForm(s.csrfField)) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid csrf token"})
		return
	}

	var (
		accepted bool
		opts     render.RenderOptions
	)
	sess.With(func(e *engine.Engine) {
		for _, name := range e.Fields() {
			if value, ok := c.GetPostForm(name); ok {
				e.SetField(name, value)
			}
		}
		accepted = e.Submit()
		opts = render.StateOf(e)
	})
	s.logSubmit(c, accepted, opts)

	status := http.StatusOK
	if !accepted {
		status = http.StatusUnprocessableEntity
	}
	s.renderPage(c, status, opts)
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.state(sessionFrom(c)))
}

// handleSetField stores one value. Validate-on-change fields update their
// error entry; every other entry is left as it was.
func (s *Server) handleSetField(c *gin.Context) {
	name := c.Param("name")

	var body fieldValue
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"value\": string}"})
		return
	}

	var known bool
	sess := sessionFrom(c)
	sess.With(func(e *engine.Engine) {
		if known = e.Has(name); known {
			e.SetField(name, *body.Value)
		}
	})
	if !known {
		c.JSON(http.StatusNotFound, errorsResponse{Errors: []validation.FieldError{{Field: name, Message: "unknown field"}}})
		return
	}
	c.JSON(http.StatusOK, s.state(sess))
}

func (s *Server) handleValidate(c *gin.Context) {
	var errs engine.Errors
	sessionFrom(c).With(func(e *engine.Engine) {
		errs = e.ValidateAll()
	})
	c.JSON(http.StatusOK, errorsResponse{Errors: s.orderedErrors(errs)})
}

// handleSubmit optionally applies a JSON object of field values, then
// submits. Unknown keys are ignored.
func (s *Server) handleSubmit(c *gin.Context) {
	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be an object of string values"})
		return
	}

	var (
		accepted bool
		opts     render.RenderOptions
	)
	sessionFrom(c).With(func(e *engine.Engine) {
		for _, name := range e.Fields() {
			if value, ok := body[name]; ok {
				e.SetField(name, value)
			}
		}
		accepted = e.Submit()
		opts = render.StateOf(e)
	})
	s.logSubmit(c, accepted, opts)

	if !accepted {
		c.JSON(http.StatusUnprocessableEntity, errorsResponse{Errors: s.orderedErrors(opts.Errors)})
		return
	}
	c.JSON(http.StatusOK, opts.Submitted)
}

func (s *Server) handleSnapshot(c *gin.Context) {
	var (
		snap engine.Snapshot
		ok   bool
	)
	sessionFrom(c).With(func(e *engine.Engine) {
		snap, ok = e.Snapshot()
	})
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing submitted yet"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleReset(c *gin.Context) {
	sess := sessionFrom(c)
	sess.With(func(e *engine.Engine) {
		e.Reset()
	})
	c.JSON(http.StatusOK, s.state(sess))
}

func (s *Server) renderPage(c *gin.Context, status int, opts render.RenderOptions) {
	sess := sessionFrom(c)
	opts.Hidden = append(opts.Hidden, render.CSRFToken(s.csrfField, sess.CSRFToken()))

	out, err := s.renderer.Render(c.Request.Context(), s.form, opts)
	if err != nil {
		s.log.Error().Err(err).Msg("render form")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
		return
	}
	c.Data(status, s.renderer.ContentType(), out)
}

func (s *Server) state(sess *session.Session) stateResponse {
	var out stateResponse
	sess.With(func(e *engine.Engine) {
		out.Values = e.Values()
		out.Errors = s.orderedErrors(e.Errors())
		if snap, ok := e.Snapshot(); ok {
			out.Snapshot = &snap
		}
	})
	return out
}

func (s *Server) logSubmit(c *gin.Context, accepted bool, opts render.RenderOptions) {
	event := s.log.Debug()
	if accepted {
		event = s.log.Info().Str("submission", opts.Submitted.ID())
	}
	event.
		Str("session", sessionFrom(c).ID()).
		Bool("accepted", accepted).
		Int("errors", len(opts.Errors)).
		Msg("submit")
}

// orderedErrors never returns nil so the JSON body always carries a list.
func (s *Server) orderedErrors(errs engine.Errors) []validation.FieldError {
	out := errs.Ordered(s.form)
	if out == nil {
		out = []validation.FieldError{}
	}
	return out
}
