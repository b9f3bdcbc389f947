package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/mediflow-ai/mediflow/internal/domain/referral"
	"github.com/mediflow-ai/mediflow/internal/service"
)

type ReferralHandler struct {
	svc *service.ReferralService
}

func NewReferralHandler(svc *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{svc: svc}
}

func (h *ReferralHandler) Register(rg *gin.RouterGroup) {
	referrals := rg.Group("/referrals")
	{
		referrals.POST("", h.create)
		referrals.GET("/:id", h.get)
		referrals.PATCH("/:id", h.update)
	}
	rg.GET("/patients/:id/referrals", h.listByPatient)
}

type createReferralRequest struct {
	PatientID  string          `json:"patient_id" binding:"required"`
	Specialist string          `json:"specialist" binding:"required"`
	Reason     string          `json:"reason"`
	Status     referral.Status `json:"status"`
}

func (h *ReferralHandler) create(c *gin.Context) {
	var req createReferralRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.svc.CreateReferral(c.Request.Context(), &referral.CreateReferralCommand{
		PatientID:  req.PatientID,
		Specialist: req.Specialist,
		Reason:     req.Reason,
		Status:     req.Status,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, r)
}

func (h *ReferralHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	r, err := h.svc.GetReferral(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, r)
}

type updateReferralRequest struct {
	Specialist *string          `json:"specialist"`
	Reason     *string          `json:"reason"`
	Status     *referral.Status `json:"status"`
}

func (h *ReferralHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateReferralRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.svc.UpdateReferral(c.Request.Context(), id, &referral.UpdateReferralCommand{
		Specialist: req.Specialist,
		Reason:     req.Reason,
		Status:     req.Status,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, r)
}

func (h *ReferralHandler) listByPatient(c *gin.Context) {
	referrals, err := h.svc.ListReferralsByPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, referrals)
}
