package api

import (
	"encoding/binary"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"stellar-forge/internal/generator"
	"stellar-forge/internal/registry"
	apperrors "stellar-forge/internal/shared/errors"
	"stellar-forge/internal/storage"
	"stellar-forge/internal/units"
	"stellar-forge/internal/version"
)

type generateRequest struct {
	Class registry.SystemClass `json:"class"`
	Seed  *uint64              `json:"seed"`
}

type batchRequest struct {
	Requests []generator.Request `json:"requests"`
	Save     bool                `json:"save"`
}

type evolveRequest struct {
	Years float64 `json:"years"`
}

// healthCheck returns the health status of the server
func (api *API) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"archetypes": len(api.catalog.Types()),
	})
}

// getVersion returns the generator version
func (api *API) getVersion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, version.GetInfo())
}

func (api *API) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := api.catalog.Stats(r.Context())
	if err != nil {
		api.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (api *API) listTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, api.catalog.Types())
}

func (api *API) getType(w http.ResponseWriter, r *http.Request) {
	def, err := api.catalog.Type(registry.SystemClass(mux.Vars(r)["class"]))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, def)
}

// generate builds a system without archiving it. A missing seed draws a
// fresh one, echoed back in the result.
func (api *API) generate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	seed, err := parseSeed(q.Get("seed"))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	res, err := api.catalog.Generate(r.Context(), registry.SystemClass(q.Get("class")), seed)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (api *API) createSystem(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.fail(w, r, apperrors.WrapValidation("invalid request body", err))
		return
	}
	seed := randomSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	res, err := api.catalog.GenerateAndSave(r.Context(), req.Class, seed)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

func (api *API) createBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.fail(w, r, apperrors.WrapValidation("invalid request body", err))
		return
	}
	results, err := api.catalog.Batch(r.Context(), req.Requests, req.Save)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	status := http.StatusOK
	if req.Save {
		status = http.StatusCreated
	}
	respondJSON(w, status, results)
}

func (api *API) listSystems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := storage.Filter{
		Class:         registry.SystemClass(q.Get("class")),
		HabitableOnly: q.Get("habitable") == "true",
		StableOnly:    q.Get("stable") == "true",
	}
	for key, dst := range map[string]*int{"min_planets": &f.MinPlanets, "limit": &f.Limit, "offset": &f.Offset} {
		if v := q.Get(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				api.fail(w, r, apperrors.Validationf("%s must be an integer, got %q", key, v))
				return
			}
			*dst = n
		}
	}

	list, err := api.catalog.List(r.Context(), f)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (api *API) getSystem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	res, err := api.catalog.Get(r.Context(), id)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (api *API) deleteSystem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	if err := api.catalog.Delete(r.Context(), id); err != nil {
		api.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) evolveSystem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	var req evolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.fail(w, r, apperrors.WrapValidation("invalid request body", err))
		return
	}
	res, err := api.catalog.Evolve(r.Context(), id, units.Years(req.Years))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.WrapValidation("invalid system id "+strconv.Quote(raw), err)
	}
	return id, nil
}

func parseSeed(raw string) (uint64, error) {
	if raw == "" {
		return randomSeed(), nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.WrapValidation("seed must be an unsigned integer", err)
	}
	return seed, nil
}

func randomSeed() uint64 {
	id := uuid.New()
	return binary.BigEndian.Uint64(id[:8])
}
