// Answer HTTP handlers.
//
// This file exposes REST endpoints for answer resources:
//   - POST   /answers                 (create, form-encoded)
//   - GET    /questions/{id}/answers  (list answers of a question)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// AddAnswer godoc
// @ID          addAnswer
// @Summary     Create an answer
// @Description Stores an answer for a question. question_id is not checked against existing questions.
// @Tags        Answers
// @Accept      x-www-form-urlencoded
// @Produce     plain
// @Param       content      formData  string   true  "Answer text"
// @Param       question_id  formData  integer  true  "Question ID"
// @Success     200  {string}  string  "Answer added"
// @Failure     422  {object}  handlers.ErrorResponse  "Malformed body or database query error"
// @Router      /answers [post]
func (h *Handlers) AddAnswer(c *gin.Context) {
	var na domain.NewAnswer
	if err := c.ShouldBindWith(&na, binding.Form); err != nil {
		reject(c, &DecodeError{Err: err})
		return
	}
	na.Normalize()

	if _, err := h.store.AddAnswer(c.Request.Context(), na); err != nil {
		reject(c, err)
		return
	}
	text(c, "Answer added")
}

// GetAnswers godoc
// @ID          listAnswers
// @Summary     List answers of a question
// @Description Returns the answers referencing the question, oldest first. An unknown question yields an empty array.
// @Tags        Answers
// @Produce     json
// @Param       id   path      int  true  "Question ID"
// @Success     200  {array}   domain.Answer
// @Failure     416  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     422  {object}  handlers.ErrorResponse  "Database query error"
// @Router      /questions/{id}/answers [get]
func (h *Handlers) GetAnswers(c *gin.Context) {
	id, err := questionID(c)
	if err != nil {
		reject(c, err)
		return
	}
	as, err := h.store.GetAnswers(c.Request.Context(), id)
	if err != nil {
		reject(c, err)
		return
	}
	ok(c, http.StatusOK, as)
}
