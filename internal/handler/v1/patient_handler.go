package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/mediflow-ai/mediflow/internal/domain/patient"
	"github.com/mediflow-ai/mediflow/internal/service"
)

type PatientHandler struct {
	svc *service.PatientService
}

func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

func (h *PatientHandler) Register(rg *gin.RouterGroup) {
	patients := rg.Group("/patients")
	{
		patients.POST("", h.create)
		patients.GET("", h.list)
		patients.GET("/search", h.search)
		patients.GET("/:id", h.get)
		patients.PATCH("/:id", h.update)
		patients.DELETE("/:id", h.delete)

		patients.POST("/:id/allergies", h.addAllergy)
		patients.GET("/:id/allergies", h.listAllergies)
		patients.POST("/:id/conditions", h.addCondition)
		patients.GET("/:id/conditions", h.listConditions)
	}
	rg.DELETE("/allergies/:id", h.removeAllergy)
}

type createPatientRequest struct {
	FirstName        string                    `json:"first_name" binding:"required"`
	LastName         string                    `json:"last_name" binding:"required"`
	DateOfBirth      string                    `json:"date_of_birth" binding:"required"`
	Gender           patient.Gender            `json:"gender"`
	BloodType        patient.BloodType         `json:"blood_type"`
	Phone            string                    `json:"phone"`
	Email            string                    `json:"email"`
	Address          string                    `json:"address"`
	EmergencyContact *patient.EmergencyContact `json:"emergency_contact"`
	Insurance        *patient.Insurance        `json:"insurance"`
}

func (h *PatientHandler) create(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.CreatePatient(c.Request.Context(), &patient.CreatePatientCommand{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		BloodType:        req.BloodType,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		Insurance:        req.Insurance,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p)
}

func (h *PatientHandler) get(c *gin.Context) {
	chart, err := h.svc.GetPatientChart(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, chart)
}

type updatePatientRequest struct {
	FirstName        *string                   `json:"first_name"`
	LastName         *string                   `json:"last_name"`
	DateOfBirth      *string                   `json:"date_of_birth"`
	Gender           *patient.Gender           `json:"gender"`
	BloodType        *patient.BloodType        `json:"blood_type"`
	Phone            *string                   `json:"phone"`
	Email            *string                   `json:"email"`
	Address          *string                   `json:"address"`
	EmergencyContact *patient.EmergencyContact `json:"emergency_contact"`
	Insurance        *patient.Insurance        `json:"insurance"`
	Status           *patient.Status           `json:"status"`
}

func (h *PatientHandler) update(c *gin.Context) {
	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.UpdatePatient(c.Request.Context(), c.Param("id"), &patient.UpdatePatientCommand{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		BloodType:        req.BloodType,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		Insurance:        req.Insurance,
		Status:           req.Status,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) delete(c *gin.Context) {
	if err := h.svc.DeletePatient(c.Request.Context(), c.Param("id"), actorFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

func (h *PatientHandler) list(c *gin.Context) {
	patients, err := h.svc.ListPatients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, patients)
}

func (h *PatientHandler) search(c *gin.Context) {
	patients, err := h.svc.SearchPatients(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, patients)
}

type addAllergyRequest struct {
	Allergen string                  `json:"allergen" binding:"required"`
	Reaction string                  `json:"reaction"`
	Severity patient.AllergySeverity `json:"severity" binding:"required"`
	Status   patient.AllergyStatus   `json:"status"`
}

func (h *PatientHandler) addAllergy(c *gin.Context) {
	var req addAllergyRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.AddAllergy(c.Request.Context(), &patient.AddAllergyCommand{
		PatientID: c.Param("id"),
		Allergen:  req.Allergen,
		Reaction:  req.Reaction,
		Severity:  req.Severity,
		Status:    req.Status,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, a)
}

func (h *PatientHandler) listAllergies(c *gin.Context) {
	allergies, err := h.svc.ListAllergies(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, allergies)
}

func (h *PatientHandler) removeAllergy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.RemoveAllergy(c.Request.Context(), id, actorFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

type addConditionRequest struct {
	Condition     string                  `json:"condition" binding:"required"`
	DiagnosisDate string                  `json:"diagnosis_date"`
	Status        patient.ConditionStatus `json:"status"`
}

func (h *PatientHandler) addCondition(c *gin.Context) {
	var req addConditionRequest
	if !bindJSON(c, &req) {
		return
	}

	cond, err := h.svc.AddCondition(c.Request.Context(), &patient.AddConditionCommand{
		PatientID:     c.Param("id"),
		Condition:     req.Condition,
		DiagnosisDate: req.DiagnosisDate,
		Status:        req.Status,
	}, actorFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, cond)
}

func (h *PatientHandler) listConditions(c *gin.Context) {
	conditions, err := h.svc.ListConditions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, conditions)
}
