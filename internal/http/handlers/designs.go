package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"homedesign/internal/canvas"
	"homedesign/internal/design"
	"homedesign/internal/gallery"
	"homedesign/internal/orchestrator"
	"homedesign/internal/prompt"
	"homedesign/pkg/zip"
)

type designRequest struct {
	Option             string        `json:"option"`
	Room               string        `json:"room"`
	TypeSelection      string        `json:"type_selection"`
	Style              string        `json:"style"`
	Palette            string        `json:"palette"`
	AspectRatio        string        `json:"aspect_ratio"`
	Materials          []string      `json:"materials"`
	Lighting           string        `json:"lighting"`
	EmptyRoom          bool          `json:"empty_room"`
	AllowAdditions     *bool         `json:"allow_additions"`
	AdditionsWhitelist []string      `json:"additions_whitelist"`
	ProtectedObjects   []string      `json:"protected_objects"`
	NoEditZones        []canvas.Rect `json:"no_edit_zones"`
	BaseImage          string        `json:"base_image"`
	ReferenceImage     string        `json:"reference_image"`
}

type designResponse struct {
	ID         uuid.UUID `json:"id"`
	StorageKey string    `json:"storage_key"`
	Option     string    `json:"option"`
	Style      string    `json:"style,omitempty"`
	ColorName  string    `json:"color_name,omitempty"`
	Prompt     string    `json:"prompt"`
	FreeUsed   int       `json:"free_used"`
}

// CreateDesign runs one generation attempt: it assembles a prompt context
// from the request body, applies the quota gate, calls the generation API,
// and persists the output.
func (a *App) CreateDesign(w http.ResponseWriter, r *http.Request) {
	var req designRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	mgr, err := a.buildManager(req)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	// Each request is its own screen-flow session, so each gets a fresh
	// orchestrator; the quota gate and gallery are shared.
	orch, err := orchestrator.New(orchestrator.Options{
		Client:       a.Client,
		Gate:         a.Gate,
		Entitlements: a.Entitlements,
		Gallery:      a.Gallery,
		Upsell: func() {
			a.Logger.Info().Msg("designs: quota blocked, upsell surfaced")
		},
		Logger:        &a.Logger,
		GenerateModel: a.Config.ImageGenModel,
		EditModel:     a.Config.ImageEditModel,
	})
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "orchestrator unavailable")
		return
	}

	var result orchestrator.Result
	runErr := orch.Run(r.Context(), mgr, func(res orchestrator.Result) {
		result = res
	})
	if runErr != nil {
		switch {
		case errors.Is(runErr, prompt.ErrIncompleteContext):
			a.error(w, http.StatusBadRequest, "bad_request", runErr.Error())
		case errors.Is(runErr, orchestrator.ErrQuotaExhausted):
			a.error(w, http.StatusForbidden, "quota_exceeded", "free generation quota exhausted")
		default:
			a.Logger.Error().Err(runErr).Msg("designs: generation attempt failed")
			a.error(w, http.StatusBadGateway, "generation_failed", "generation failed, please try again")
		}
		return
	}

	a.json(w, http.StatusCreated, designResponse{
		ID:         result.Handle.ID,
		StorageKey: result.Handle.StorageKey,
		Option:     string(result.Option),
		Style:      result.Style,
		ColorName:  result.ColorName,
		Prompt:     result.Prompt,
		FreeUsed:   a.Gate.Used(),
	})
}

// ListDesigns returns recent design history, newest first.
func (a *App) ListDesigns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	records, err := a.Gallery.List(r.Context(), limit, offset)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load designs")
		return
	}
	if records == nil {
		records = []gallery.Record{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": records})
}

// DesignArchive streams a zip of one design's stored images.
func (a *App) DesignArchive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid design id")
		return
	}
	records, err := a.Gallery.Design(r.Context(), id)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load design")
		return
	}
	if len(records) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "design not found")
		return
	}
	blobs, err := a.Gallery.ReadAll(r.Context(), records)
	if err != nil || len(blobs) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "design files not found")
		return
	}
	assets := make([]zip.Asset, 0, len(blobs))
	for i, blob := range blobs {
		assets = append(assets, zip.Asset{
			Filename: fmt.Sprintf("%s-%d", id, i+1),
			MIME:     blob.Record.MIME,
			Data:     blob.Data,
		})
	}
	archive := zip.ArchiveAssets(assets)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=design-%s.zip", id))
	_, _ = w.Write(archive)
}

// buildManager translates the request body into prompt manager mutations.
func (a *App) buildManager(req designRequest) (*prompt.Manager, error) {
	option, ok := design.ParseOption(req.Option)
	if !ok {
		return nil, fmt.Errorf("unknown option %q", req.Option)
	}

	mgr := prompt.NewManager()
	mgr.SetOption(option)

	if option == design.OptionInterior {
		if req.Room != "" {
			room, ok := design.ParseRoom(req.Room)
			if !ok {
				return nil, fmt.Errorf("unknown room %q", req.Room)
			}
			mgr.SetRoom(room)
		}
	} else if req.TypeSelection != "" {
		mgr.SetTypeSelection(req.TypeSelection, option)
	}

	if req.Style != "" {
		style, ok := design.StyleFor(option, req.Style)
		if !ok {
			return nil, fmt.Errorf("unknown style %q for option %q", req.Style, req.Option)
		}
		mgr.SetStyle(style)
	}

	if req.Palette != "" {
		palette, ok := design.ParsePalette(req.Palette)
		if !ok {
			return nil, fmt.Errorf("unknown palette %q", req.Palette)
		}
		mgr.SetPalette(palette)
	}

	if req.AspectRatio != "" {
		mgr.SetAspectRatio(req.AspectRatio)
	}
	if len(req.Materials) > 0 {
		mgr.SetMaterials(req.Materials)
	}
	if req.Lighting != "" {
		mgr.SetLighting(req.Lighting)
	}
	if req.AllowAdditions != nil {
		mgr.SetAllowAdditions(*req.AllowAdditions)
	}
	if len(req.AdditionsWhitelist) > 0 {
		mgr.SetAdditionsWhitelist(req.AdditionsWhitelist)
	}
	mgr.SetEmptyRoom(req.EmptyRoom)
	if len(req.ProtectedObjects) > 0 {
		mgr.SetProtectedObjects(req.ProtectedObjects)
	}
	if len(req.NoEditZones) > 0 {
		mgr.SetNoEditZones(req.NoEditZones)
	}

	if req.BaseImage != "" {
		img, err := decodeImage(req.BaseImage)
		if err != nil {
			return nil, fmt.Errorf("base image: %w", err)
		}
		mgr.SetBaseImage(img)
		// No explicit ratio: follow the base photo's shape instead of the
		// portrait default.
		if req.AspectRatio == "" {
			b := img.Bounds()
			mgr.SetAspectRatio(canvas.BestFormat(b.Dx(), b.Dy()).Ratio())
		}
	}
	if req.ReferenceImage != "" {
		img, err := decodeImage(req.ReferenceImage)
		if err != nil {
			return nil, fmt.Errorf("reference image: %w", err)
		}
		mgr.SetReferenceImage(img)
	}

	return mgr, nil
}

func decodeImage(encoded string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.New("invalid base64 payload")
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.New("unsupported image format")
	}
	return img, nil
}
