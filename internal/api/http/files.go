package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/filekeeper/internal/providers/filesystem"
	"github.com/GriffinCanCode/filekeeper/internal/shared/paths"
)

const contentTypeText = "text/plain; charset=utf-8"

// List renders the storage root's immediate entries and the create form
func (h *Handlers) List(c *gin.Context) {
	match := c.Query("match")
	if !filesystem.ValidPattern(match) {
		c.String(http.StatusBadRequest, msgBadPattern)
		return
	}

	entries, err := h.files.List(c.Request.Context(), h.resolver.Root(), filesystem.ListOptions{Match: match})
	if err != nil {
		h.fail(c, errIO, "list", err)
		return
	}

	c.HTML(http.StatusOK, listingName, listing{Entries: entries, Match: match})
}

// Create writes the content parameter to the named file and redirects home
func (h *Handlers) Create(c *gin.Context) {
	p, ok := h.resolveFile(c, "create")
	if !ok {
		return
	}

	content := c.DefaultQuery("content", "")
	if err := h.files.Create(c.Request.Context(), p, []byte(content)); err != nil {
		h.fail(c, kindOf(err), "create", err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Read returns the named file as plain text
func (h *Handlers) Read(c *gin.Context) {
	p, ok := h.resolveFile(c, "read")
	if !ok {
		return
	}

	data, err := h.files.Read(c.Request.Context(), p)
	if err != nil {
		h.fail(c, kindOf(err), "read", err)
		return
	}

	c.Data(http.StatusOK, contentTypeText, data)
}

// Delete removes the named file and redirects home
func (h *Handlers) Delete(c *gin.Context) {
	p, ok := h.resolveFile(c, "delete")
	if !ok {
		return
	}

	if err := h.files.Delete(c.Request.Context(), p); err != nil {
		h.fail(c, kindOf(err), "delete", err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// resolveFile reads the file parameter and confines it to the storage root.
// On failure the response has already been written.
func (h *Handlers) resolveFile(c *gin.Context, verb string) (paths.Resolved, bool) {
	name := c.Query("file")
	if name == "" {
		h.fail(c, errMissingParameter, verb, nil)
		return paths.Resolved{}, false
	}

	p, err := h.resolver.Resolve(name)
	if err != nil {
		h.fail(c, errPathRejected, verb, err)
		return paths.Resolved{}, false
	}
	return p, true
}
