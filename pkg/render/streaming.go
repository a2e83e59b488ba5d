package render

import (
	"fmt"
	"io"
	"net/http"
)

// StreamingRenderer wraps Renderer with chunked output support. The
// head section is flushed before the body renders, so clients start
// fetching stylesheets while the tree serializes.
type StreamingRenderer struct {
	*Renderer
	flusher http.Flusher
	w       io.Writer
}

// NewStreamingRenderer creates a streaming renderer that writes to an
// http.ResponseWriter. If the writer implements http.Flusher, content
// is flushed after each section.
func NewStreamingRenderer(w http.ResponseWriter, config RendererConfig) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{
		Renderer: NewRenderer(config),
		flusher:  flusher,
		w:        w,
	}
}

// RenderPage renders a complete HTML document with incremental
// flushing.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := s.w.Write([]byte("<!DOCTYPE html>\n")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := s.renderHead(s.w, page); err != nil {
		return err
	}
	s.flush()

	if _, err := s.w.Write([]byte("<body>\n")); err != nil {
		return err
	}
	if page.Body != nil {
		if err := s.RenderToWriter(s.w, page.Body); err != nil {
			return err
		}
	}
	s.flush()

	if err := s.renderScripts(s.w, page.Scripts); err != nil {
		return err
	}
	_, err := s.w.Write([]byte("\n</body>\n</html>\n"))
	s.flush()
	return err
}

func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
