package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rentwise/accessgate/pkg/access"
	"github.com/rentwise/accessgate/pkg/plan"
	"github.com/rentwise/accessgate/pkg/subscription"
)

// resourceFinancialTransactions is accepted by the can-add endpoint only.
const resourceFinancialTransactions = "financial_transactions"

type handlers struct {
	svc access.Service
}

type statusResponse struct {
	Status subscription.EffectiveStatus `json:"status"`
	Prompt subscription.PromptKind      `json:"prompt"`
}

type canAddResponse struct {
	Resource string `json:"resource"`
	Allowed  bool   `json:"allowed"`
}

type blockedResponse struct {
	Resource plan.Resource     `json:"resource"`
	Count    int               `json:"count"`
	IDs      access.BlockedSet `json:"ids"`
}

type visibilityResponse struct {
	Resource plan.Resource `json:"resource"`
	ID       uuid.UUID     `json:"id"`
	Viewable bool          `json:"viewable"`
}

func ownerID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "ownerID"))
	if err != nil {
		return uuid.Nil, errInvalidOwnerID
	}
	return id, nil
}

func resource(r *http.Request) plan.Resource {
	return plan.Resource(chi.URLParam(r, "resource"))
}

func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	status, err := h.svc.ResolveSubscriptionStatus(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, statusResponse{Status: status, Prompt: status.Prompt()})
}

func (h *handlers) summary(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sum, err := h.svc.Summary(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, sum)
}

func (h *handlers) usage(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	u, err := h.svc.Usage(r.Context(), owner, resource(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, u)
}

func (h *handlers) canAdd(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res := chi.URLParam(r, "resource")
	var allowed bool
	switch res {
	case string(plan.ResourceDocuments):
		allowed, err = h.svc.CanAddDocument(r.Context(), owner)
	case resourceFinancialTransactions:
		allowed, err = h.svc.CanAddFinancialTransaction(r.Context(), owner)
	default:
		allowed, err = h.svc.CanAdd(r.Context(), owner, plan.Resource(res))
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, canAddResponse{Resource: res, Allowed: allowed})
}

func (h *handlers) blocked(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res := resource(r)
	set, err := h.svc.BlockedIDs(r.Context(), owner, res)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, blockedResponse{Resource: res, Count: set.Len(), IDs: set})
}

func (h *handlers) visibility(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, errInvalidResourceID)
		return
	}

	res := resource(r)
	viewable, err := h.svc.CanViewDetails(r.Context(), owner, res, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, visibilityResponse{Resource: res, ID: id, Viewable: viewable})
}
