package sessions

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-advisor/internal/advisor"
	"career-advisor/internal/shared/server/middleware"
	"career-advisor/internal/shared/server/respond"
	"career-advisor/internal/shared/util"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/session", h.get)
	rg.PUT("/session/profile", h.updateProfile)
	rg.POST("/session/resume", h.uploadResume)
	rg.PUT("/session/skills", h.setSkills)
}

type psychometricRequest struct {
	Analytical     int `json:"analytical"`
	Creativity     int `json:"creativity"`
	Communication  int `json:"communication"`
	ProblemSolving int `json:"problem_solving"`
	Adaptability   int `json:"adaptability"`
	Leadership     int `json:"leadership"`
}

type profileRequest struct {
	Name         string              `json:"name"`
	Age          int                 `json:"age"`
	Domain       string              `json:"domain"`
	Psychometric psychometricRequest `json:"psychometric"`
}

func (r psychometricRequest) toModel() advisor.Psychometric {
	return advisor.Psychometric{
		Analytical:     r.Analytical,
		Creativity:     r.Creativity,
		Communication:  r.Communication,
		ProblemSolving: r.ProblemSolving,
		Adaptability:   r.Adaptability,
		Leadership:     r.Leadership,
	}
}

func (r psychometricRequest) validate() string {
	traits := []struct {
		name  string
		value int
	}{
		{"analytical", r.Analytical},
		{"creativity", r.Creativity},
		{"communication", r.Communication},
		{"problem_solving", r.ProblemSolving},
		{"adaptability", r.Adaptability},
		{"leadership", r.Leadership},
	}
	for _, t := range traits {
		if t.value < 1 || t.value > 10 {
			return t.name + " must be between 1 and 10"
		}
	}
	return ""
}

func (h *Handler) updateProfile(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if req.Age < 10 || req.Age > 80 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "age must be between 10 and 80", nil)
		return
	}
	if msg := req.Psychometric.validate(); msg != "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", msg, nil)
		return
	}

	session, err := h.Svc.UpdateProfile(c.Request.Context(), sessionID, req.Name, req.Domain, req.Age, req.Psychometric.toModel())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		return
	}

	respondSession(c, session)
}

func (h *Handler) uploadResume(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}
	mimeType := fileHeader.Header.Get("Content-Type")

	result, err := h.Svc.AttachResume(c.Request.Context(), sessionID, fileName, mimeType, data)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process resume", nil)
		return
	}

	c.Set("sessionStage", string(result.Session.Stage()))
	respond.OK(c, gin.H{
		"session":        toSessionResponse(result.Session),
		"parsed":         result.ParsedOK,
		"manualEntry":    result.ManualEntry,
		"skillsDetected": result.SkillsFromAI,
		"skills":         emptyIfNil(result.Skills),
		"warnings":       emptyIfNil(result.Warnings),
	})
}

type skillsRequest struct {
	Skills string `json:"skills"`
}

func (h *Handler) setSkills(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	var req skillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	// Reject before touching the session: stored skills must survive a bad request.
	if len(ParseSkillList(req.Skills)) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "skills must contain at least one non-empty entry", nil)
		return
	}

	session, err := h.Svc.SetSkills(c.Request.Context(), sessionID, req.Skills)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store skills", nil)
		return
	}

	respondSession(c, session)
}

func (h *Handler) get(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	session, err := h.Svc.Get(c.Request.Context(), sessionID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch session", nil)
		return
	}

	respondSession(c, session)
}

func respondSession(c *gin.Context, s Session) {
	c.Set("sessionStage", string(s.Stage()))
	respond.OK(c, toSessionResponse(s))
}

func toSessionResponse(s Session) gin.H {
	return gin.H{
		"sessionId":      s.ID,
		"stage":          s.Stage(),
		"name":           s.Name,
		"age":            s.Age,
		"domain":         s.Domain,
		"psychometric":   s.Psychometric,
		"resumeUploaded": s.ResumeUploaded,
		"resumeFileName": s.ResumeFileName,
		"skills":         emptyIfNil(s.Skills),
		"skillSource":    s.SkillSource,
		"lastPlanId":     s.LastPlanID,
	}
}

func emptyIfNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
