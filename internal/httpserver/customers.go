package httpserver

import (
	"errors"
	"log"
	"net/http"

	"bossboarding/internal/domain"
	"bossboarding/internal/progress"
	customerrepo "bossboarding/internal/repository/customer"
	customersvc "bossboarding/internal/service/customer"
	"github.com/gin-gonic/gin"
)

func listCustomersHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := customerrepo.Filter{
			Status:  domain.Status(c.Query("status")),
			StageID: c.Query("stage"),
			Search:  c.Query("search"),
		}
		customers, err := deps.CustomerSvc.List(c.Request.Context(), f)
		if err != nil {
			respondInternal(c, logger, err)
			return
		}
		out := make([]customerSummary, 0, len(customers))
		for _, cust := range customers {
			out = append(out, toSummary(deps, cust))
		}
		c.JSON(http.StatusOK, gin.H{"customers": out})
	}
}

func createCustomerHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customersvc.CreateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid payload")
			return
		}
		created, err := deps.CustomerSvc.Create(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				respondError(c, http.StatusConflict, "a customer with this email already exists")
				return
			}
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func getCustomerHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cust, notes, err := deps.CustomerSvc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondDomainError(c, logger, err)
			return
		}
		token, err := deps.Onboarding.IssueLink(c.Request.Context(), cust.ID)
		if err != nil {
			respondInternal(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"customer":        cust,
			"notes":           notes,
			"onboardingToken": token,
			"progressPercent": progress.OverallPercent(deps.Catalog, cust.TaskStatuses),
		})
	}
}

func updateCustomerHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customersvc.UpdateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid payload")
			return
		}
		cust, err := deps.CustomerSvc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAlreadyExists) {
				respondDomainError(c, logger, err)
				return
			}
			if errors.Is(err, domain.ErrRangeExhausted) {
				respondError(c, http.StatusUnprocessableEntity, err.Error())
				return
			}
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": cust})
	}
}

func deleteCustomerHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.CustomerSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondDomainError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func cloneMachineHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := deps.CustomerSvc.CloneMachine(c.Request.Context(), c.Param("id"), c.Param("machineID"))
		if err != nil {
			if errors.Is(err, domain.ErrRangeExhausted) {
				respondError(c, http.StatusUnprocessableEntity, err.Error())
				return
			}
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"machine": m})
	}
}

type taskStatusRequest struct {
	Status domain.TaskStatus `json:"status" binding:"required"`
}

func setTaskStatusHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req taskStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || !validTaskStatus(req.Status) {
			respondError(c, http.StatusBadRequest, "status must be not_started, in_progress or complete")
			return
		}
		cust, err := deps.CustomerSvc.SetTaskStatus(c.Request.Context(), c.Param("id"), c.Param("taskID"), req.Status, updaterName(c))
		if err != nil {
			if errors.Is(err, customersvc.ErrUnknownTask) {
				respondError(c, http.StatusBadRequest, err.Error())
				return
			}
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"customer":        cust,
			"progressPercent": progress.OverallPercent(deps.Catalog, cust.TaskStatuses),
		})
	}
}

func setStageTasksHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req taskStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || !validTaskStatus(req.Status) {
			respondError(c, http.StatusBadRequest, "status must be not_started, in_progress or complete")
			return
		}
		cust, err := deps.CustomerSvc.SetStageTasks(c.Request.Context(), c.Param("id"), c.Param("stageID"), req.Status, updaterName(c))
		if err != nil {
			if errors.Is(err, customersvc.ErrUnknownStage) {
				respondError(c, http.StatusBadRequest, err.Error())
				return
			}
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"customer":        cust,
			"progressPercent": progress.OverallPercent(deps.Catalog, cust.TaskStatuses),
		})
	}
}

type advanceStageRequest struct {
	StageID string `json:"stageId" binding:"required"`
}

func advanceStageHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req advanceStageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "stageId required")
			return
		}
		cust, err := deps.CustomerSvc.AdvanceStage(c.Request.Context(), c.Param("id"), req.StageID)
		if err != nil {
			if errors.Is(err, customersvc.ErrUnknownStage) {
				respondError(c, http.StatusBadRequest, err.Error())
				return
			}
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": cust})
	}
}

func customerProgressHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cust, _, err := deps.CustomerSvc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"progressPercent": progress.OverallPercent(deps.Catalog, cust.TaskStatuses),
			"timeline":        progress.Timeline(deps.Catalog, *cust),
		})
	}
}

type noteRequest struct {
	Body string `json:"body" binding:"required"`
}

func addNoteHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req noteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "body required")
			return
		}
		n, err := deps.CustomerSvc.AddNote(c.Request.Context(), c.Param("id"), updaterName(c), req.Body)
		if err != nil {
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"note": n})
	}
}

func updateNoteHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req noteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "body required")
			return
		}
		n, err := deps.CustomerSvc.UpdateNote(c.Request.Context(), c.Param("noteID"), req.Body)
		if err != nil {
			respondDomainError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"note": n})
	}
}

func deleteNoteHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.CustomerSvc.DeleteNote(c.Request.Context(), c.Param("noteID")); err != nil {
			respondDomainError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// customerSummary is the dashboard row shape: the aggregate without child
// collections, plus the derived percentage.
type customerSummary struct {
	domain.Customer
	ProgressPercent int `json:"progressPercent"`
}

func toSummary(deps Deps, c domain.Customer) customerSummary {
	return customerSummary{
		Customer:        c,
		ProgressPercent: progress.OverallPercent(deps.Catalog, c.TaskStatuses),
	}
}

func validTaskStatus(s domain.TaskStatus) bool {
	switch s {
	case domain.TaskNotStarted, domain.TaskInProgress, domain.TaskComplete:
		return true
	}
	return false
}

func updaterName(c *gin.Context) string {
	if u := adminFromContext(c); u != nil {
		if u.Name != "" {
			return u.Name
		}
		return u.Email
	}
	return ""
}
