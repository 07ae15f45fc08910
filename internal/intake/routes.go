package intake

import (
	"errors"
	"net/http"
	"strconv"

	"voxel-terrain/internal/config"
)

// fieldRoutes maps each PUT path prefix to the field it edits. The value is
// the last path segment.
var fieldRoutes = []struct {
	path  string
	field config.Field
}{
	{"/api/terrain/width", config.FieldTerrainWidth},
	{"/api/terrain/depth", config.FieldTerrainDepth},
	{"/api/terrain/seed", config.FieldTerrainSeed},
	{"/api/terrain/cubesize", config.FieldTerrainVoxelSize},
	{"/api/terrain/color", config.FieldTerrainColor},
	{"/api/terrain/height", config.FieldTerrainMaxHeight},
	{"/api/terrain/failoff", config.FieldTerrainFalloff},
	{"/api/terrain/z", config.FieldTerrainZ},
	{"/api/terrain/fractal/octaves", config.FieldTerrainOctaves},
	{"/api/terrain/fractal/amplitude", config.FieldTerrainGain},
	{"/api/terrain/fractal/frequency", config.FieldTerrainLacunarity},

	{"/api/camera/position/x", config.FieldCameraPositionX},
	{"/api/camera/position/y", config.FieldCameraPositionY},
	{"/api/camera/position/z", config.FieldCameraPositionZ},
	{"/api/camera/fieldview/y", config.FieldCameraFieldOfViewY},
	{"/api/camera/far/z", config.FieldCameraZFar},
	{"/api/camera/target/x", config.FieldCameraTargetX},
	{"/api/camera/target/y", config.FieldCameraTargetY},
	{"/api/camera/target/z", config.FieldCameraTargetZ},
	{"/api/camera/up/x", config.FieldCameraUpX},
	{"/api/camera/up/y", config.FieldCameraUpY},
	{"/api/camera/up/z", config.FieldCameraUpZ},
}

type updateBody struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) handleUpdate(field config.Field) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := config.Parse(field, r.PathValue("value"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.sink.Send(r.Context(), u); err != nil {
			s.log.Warn().Err(err).Stringer("update", u).Msg("update not queued")
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		s.log.Debug().Stringer("update", u).Msg("update queued")
		writeJSON(w, http.StatusOK, updateBody{Field: u.Field().String(), Value: u.Encode()})
	}
}

type renderBody struct {
	FPSLimit  int  `json:"fps_limit"`
	Wireframe bool `json:"wireframe"`
}

func currentRender() renderBody {
	return renderBody{FPSLimit: config.GetFPSLimit(), Wireframe: config.GetWireframe()}
}

func (s *Server) handleFPS(w http.ResponseWriter, r *http.Request) {
	fps, err := strconv.Atoi(r.PathValue("value"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("fps must be an integer"))
		return
	}
	config.SetFPSLimit(fps)
	writeJSON(w, http.StatusOK, currentRender())
}

func (s *Server) handleWireframe(w http.ResponseWriter, r *http.Request) {
	on, err := strconv.ParseBool(r.PathValue("value"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("wireframe must be true or false"))
		return
	}
	config.SetWireframe(on)
	writeJSON(w, http.StatusOK, currentRender())
}
