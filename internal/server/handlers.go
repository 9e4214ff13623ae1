// internal/server/handlers.go
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"degen-core/codon"
	"degen-core/gcode"
	"degen/internal/output"
	"degen/internal/service"
	"degen/internal/version"
	"degen/pkg/api"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Version})
}

func (s *Server) design(c *gin.Context) {
	var req api.DesignRequestV1
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()
	d, err := s.designer.Design(ctx, service.Request{Include: req.Include, Avoid: req.Avoid})
	switch {
	case err == nil:
	case errors.Is(err, gcode.ErrUnknownAminoAcid), errors.Is(err, service.ErrOverlap):
		abort(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		if d.Result.Outcome == "" {
			abort(c, http.StatusGatewayTimeout, "no design before the deadline")
			return
		}
		// A cut-short search still yields a valid pattern.
		s.log.Warn("design cut short", "include", d.Include, "err", err)
	default:
		s.log.Error("design failed", "err", err)
		abort(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, output.ToAPIDesign(req.ID, d, s.designer.Engine().Table()))
}

func (s *Server) expand(c *gin.Context) {
	var req api.ExpandRequestV1
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	p, err := codon.ParsePattern(req.Pattern)
	if err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, output.ToAPIExpansion(p, s.designer.Engine().Table()))
}

func (s *Server) table(c *gin.Context) {
	c.JSON(http.StatusOK, output.ToAPITable(s.designer.Engine().Table()))
}
