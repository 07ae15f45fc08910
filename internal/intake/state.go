package intake

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strconv"

	"golang.org/x/image/draw"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/preset"
	"voxel-terrain/internal/terrain"
)

const (
	maxPresetBytes    = 1 << 20
	defaultPNGScale   = 4
	maxPNGScale       = 16
	maxPNGSide        = 4096
	presetContentType = "application/yaml"
)

type stateBody struct {
	Generation uint64       `json:"generation"`
	State      config.State `json:"state"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateBody{
		Generation: s.pub.Generation(),
		State:      s.pub.Published(),
	})
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	p := preset.Preset{Name: r.URL.Query().Get("name"), State: s.pub.Published()}
	b, err := preset.Marshal(p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", presetContentType)
	_, _ = w.Write(b)
}

type presetBody struct {
	Queued int `json:"queued"`
}

// handlePutPreset queues the updates that move the published state to the
// uploaded preset as one batch, so no frame renders a partial preset. Fields
// missing from the document keep their current value.
func (s *Server) handlePutPreset(w http.ResponseWriter, r *http.Request) {
	from := s.pub.Published()
	p, err := preset.Decode(http.MaxBytesReader(w, r.Body, maxPresetBytes), from)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updates := p.Updates(from)
	if err := s.sink.SendBatch(r.Context(), updates); err != nil {
		s.log.Warn().Err(err).Int("updates", len(updates)).Msg("preset not queued")
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.log.Info().Str("preset", p.Name).Int("updates", len(updates)).Msg("preset queued")
	writeJSON(w, http.StatusOK, presetBody{Queued: len(updates)})
}

func (s *Server) handleHeightmap(w http.ResponseWriter, r *http.Request) {
	scale := defaultPNGScale
	if raw := r.URL.Query().Get("scale"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxPNGScale {
			writeError(w, http.StatusBadRequest, fmt.Errorf("scale must be an integer in [1, %d]", maxPNGScale))
			return
		}
		scale = v
	}

	grid := terrain.BuildGrid(s.sampler, s.pub.Published().Terrain)
	if grid.Len() == 0 {
		writeError(w, http.StatusNotFound, errors.New("terrain footprint is empty"))
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, Heightmap(grid, scale)); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

// Heightmap renders the grid as grayscale, tallest column white, with
// columns along x and rows along y. The image is enlarged by scale, limited
// so neither side exceeds maxPNGSide.
func Heightmap(g terrain.HeightGrid, scale int) *image.Gray {
	src := image.NewGray(image.Rect(0, 0, g.Cols, g.Rows))
	top := g.MaxHeight()
	for col := 0; col < g.Cols; col++ {
		for row := 0; row < g.Rows; row++ {
			var v uint8
			if top > 0 {
				v = uint8(g.At(col, row)/top*255 + 0.5)
			}
			src.SetGray(col, row, color.Gray{Y: v})
		}
	}

	scale = max(1, min(scale, maxPNGSide/max(g.Cols, g.Rows)))
	if scale == 1 {
		return src
	}
	dst := image.NewGray(image.Rect(0, 0, g.Cols*scale, g.Rows*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
