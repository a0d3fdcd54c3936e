package boarding

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-boarding/internal/domain/customers"
	"pet-boarding/internal/domain/pets"
)

func RegisterRoutes(r chi.Router, svc *Service, custSvc *customers.Service, petsSvc *pets.Service) {
	r.Post("/checkins", checkInHandler(svc, custSvc, petsSvc))
	r.Post("/stays/{stayID}/checkout", checkOutHandler(svc))
	r.Get("/stays/{stayID}/invoice", invoiceHandler(svc))
	r.Get("/spaces", spacesHandler(svc))
	r.Get("/reports/occupancy", occupancyReportHandler(svc))
	r.Get("/reports/revenue", revenueReportHandler(svc))
}

type checkInRequest struct {
	// Either an existing pet id, or an owner name plus the new pet's
	// profile, the way the front desk takes walk-ins.
	PetID string `json:"pet_id"`

	OwnerName string  `json:"owner_name"`
	PetName   string  `json:"pet_name"`
	Species   string  `json:"species"`
	AgeYears  float64 `json:"age_years"`
	Breed     string  `json:"breed"`
	WeightLbs float64 `json:"weight_lbs"`

	Days              int  `json:"days"`
	GroomingRequested bool `json:"grooming_requested"`
}

type checkInResponse struct {
	StayID        string `json:"stay_id"`
	PetID         string `json:"pet_id"`
	Message       string `json:"message"`
	BoardingCents int64  `json:"boarding_cents"`
	GroomingCents int64  `json:"grooming_cents"`
	TotalCents    int64  `json:"total_cents"`
}

func checkInHandler(svc *Service, custSvc *customers.Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		petID := strings.TrimSpace(req.PetID)
		if petID == "" {
			// walk-in path: resolve (or create) the owner, then register
			// the pet before admitting it
			owner, err := custSvc.Resolve(r.Context(), req.OwnerName)
			if err != nil {
				if errors.Is(err, customers.ErrInvalidInput) {
					http.Error(w, "pet_id or owner_name required", http.StatusBadRequest)
					return
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			p, err := petsSvc.Create(r.Context(), pets.CreateInput{
				CustomerID: owner.ID,
				Name:       req.PetName,
				Species:    req.Species,
				AgeYears:   req.AgeYears,
				Breed:      req.Breed,
				WeightLbs:  req.WeightLbs,
			})
			if err != nil {
				writeError(w, err)
				return
			}
			petID = p.ID
		}

		res, err := svc.CheckIn(r.Context(), CheckInInput{
			PetID:             petID,
			Days:              req.Days,
			GroomingRequested: req.GroomingRequested,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, checkInResponse{
			StayID:        res.StayID,
			PetID:         petID,
			Message:       res.Message,
			BoardingCents: res.BoardingCents,
			GroomingCents: res.GroomingCents,
			TotalCents:    res.TotalCents,
		})
	}
}

type checkOutResponse struct {
	Message            string `json:"message"`
	AmountChargedCents int64  `json:"amount_charged_cents"`
}

func checkOutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.CheckOut(r.Context(), chi.URLParam(r, "stayID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, checkOutResponse{
			Message:            res.Message,
			AmountChargedCents: res.AmountChargedCents,
		})
	}
}

func invoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := svc.Invoice(r.Context(), chi.URLParam(r, "stayID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeText(w, text)
	}
}

type spacesResponse struct {
	DogSpaces int `json:"dog_spaces"`
	CatSpaces int `json:"cat_spaces"`
}

func spacesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sp, err := svc.AvailableSpaces(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, spacesResponse{
			DogSpaces: sp.DogSpaces,
			CatSpaces: sp.CatSpaces,
		})
	}
}

// reportDays parses the ?days=N window, defaulting to 30 like the
// original reporting screens.
func reportDays(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("days"))
	if raw == "" {
		return 30, nil
	}
	return strconv.Atoi(raw)
}

func occupancyReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := reportDays(r)
		if err != nil {
			http.Error(w, "days must be an integer", http.StatusBadRequest)
			return
		}

		text, err := svc.OccupancyReport(r.Context(), days)
		if err != nil {
			writeError(w, err)
			return
		}
		writeText(w, text)
	}
}

func revenueReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := reportDays(r)
		if err != nil {
			http.Error(w, "days must be an integer", http.StatusBadRequest)
			return
		}

		text, err := svc.RevenueReport(r.Context(), days)
		if err != nil {
			writeError(w, err)
			return
		}
		writeText(w, text)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, pets.ErrInvalidInput), errors.Is(err, pets.ErrInvalidSpecies):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound), errors.Is(err, pets.ErrNotFound), errors.Is(err, pets.ErrOwnerNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNoSpace), errors.Is(err, ErrAlreadyClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
