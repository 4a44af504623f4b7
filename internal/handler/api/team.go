package api

import (
	"net/http"
	"strconv"

	"sitehub/internal/domain/team"
	reqdto "sitehub/internal/handler/dto/request"
	resdto "sitehub/internal/handler/dto/response"
	"sitehub/internal/handler/httperr"
	"sitehub/internal/usecase/commands"
	"sitehub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	cmds commands.TeamCommands
	q    queries.TeamQueries
}

func NewTeamHandler(cmds commands.TeamCommands, q queries.TeamQueries) *TeamHandler {
	return &TeamHandler{cmds: cmds, q: q}
}

// @Summary Create team
// @Description The caller becomes owner and first lead
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTeamRequest true "Create team request"
// @Success 201 {object} resdto.TeamResponse
// @Failure 400 {object} httperr.Response
// @Router /api/teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req reqdto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	t, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Create team failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromTeam(t))
}

// @Summary Get team
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} resdto.TeamResponse
// @Failure 404 {object} httperr.Response
// @Router /api/teams/{id} [get]
func (h *TeamHandler) Get(c *gin.Context) {
	t, err := h.q.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithUsecaseError(c, err, "Get team failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTeam(t))
}

// @Summary List own teams
// @Description Teams the caller is a member of
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.TeamResponse
// @Router /api/teams [get]
func (h *TeamHandler) ListMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	teams, err := h.q.ListByMember(c.Request.Context(), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "List teams failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTeams(teams))
}

// @Summary List project teams
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param include_archived query bool false "Include archived teams"
// @Success 200 {array} resdto.TeamResponse
// @Router /api/projects/{projectId}/teams [get]
func (h *TeamHandler) ListByProject(c *gin.Context) {
	includeArchived, err := strconv.ParseBool(c.DefaultQuery("include_archived", "false"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid include_archived", nil)
		return
	}
	teams, err := h.q.ListByProject(c.Request.Context(), c.Param("projectId"), includeArchived)
	if err != nil {
		abortWithUsecaseError(c, err, "List teams failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTeams(teams))
}

// @Summary Update team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body reqdto.UpdateTeamRequest true "Fields to change"
// @Success 200 {object} resdto.TeamResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/teams/{id} [patch]
func (h *TeamHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req reqdto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	t, err := h.cmds.Update(c.Request.Context(), c.Param("id"), req.ToPatch(), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Update team failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTeam(t))
}

// @Summary Add team member
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body reqdto.AddMemberRequest true "Member"
// @Success 200 {object} resdto.TeamResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/teams/{id}/members [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req reqdto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	t, err := h.cmds.AddMember(c.Request.Context(), c.Param("id"), req.UserID, team.Role(req.Role), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Add member failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTeam(t))
}

// @Summary Remove team member
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param userId path string true "Member user ID"
// @Success 200 {object} resdto.TeamResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/teams/{id}/members/{userId} [delete]
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	t, err := h.cmds.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("userId"), userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Remove member failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTeam(t))
}

// @Summary Archive team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} resdto.TeamResponse
// @Failure 403 {object} httperr.Response
// @Router /api/teams/{id}/archive [put]
func (h *TeamHandler) Archive(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req reqdto.ArchiveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	t, err := h.cmds.Archive(c.Request.Context(), c.Param("id"), req.Reason, userID)
	if err != nil {
		abortWithUsecaseError(c, err, "Archive team failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTeam(t))
}

// @Summary Delete team
// @Tags teams
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/teams/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		abortWithUsecaseError(c, err, "Delete team failed")
		return
	}
	c.Status(http.StatusNoContent)
}
