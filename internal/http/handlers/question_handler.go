// Question HTTP handlers.
//
// This file exposes REST endpoints for question resources:
//   - GET    /questions               (list, limit/offset or start/end)
//   - GET    /questions/{id}          (fetch one)
//   - POST   /questions               (create)
//   - PUT    /questions/{id}          (replace)
//   - DELETE /questions/{id}          (delete)
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
	"github.com/tbourn/go-qa-backend/internal/pagination"
)

// GetQuestions godoc
// @ID          listQuestions
// @Summary     List questions
// @Description Returns questions in insertion order. Paging uses either limit/offset or start/end; a window past the end yields an empty array. The total count is returned in X-Total-Count.
// @Tags        Questions
// @Produce     json
//
// @Param       limit   query  int  false  "Maximum number of items"       minimum(0)
// @Param       offset  query  int  false  "Number of items to skip"       minimum(0)
// @Param       start   query  int  false  "First index (with end)"        minimum(0)
// @Param       end     query  int  false  "Index past the last (with start)" minimum(0)
//
// @Success     200  {array}   domain.Question
// @Header      200  {integer} X-Total-Count "Total number of questions"
// @Failure     416  {object}  handlers.ErrorResponse  "Invalid paging parameters"
// @Failure     422  {object}  handlers.ErrorResponse  "Database query error"
// @Router      /questions [get]
func (h *Handlers) GetQuestions(c *gin.Context) {
	p, err := pagination.Extract(queryParams(c))
	if err != nil {
		reject(c, err)
		return
	}

	ctx := c.Request.Context()
	qs, err := h.store.GetQuestions(ctx, p.Limit, p.Offset)
	if err != nil {
		reject(c, err)
		return
	}
	total, err := h.store.CountQuestions(ctx)
	if err != nil {
		reject(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	ok(c, http.StatusOK, qs)
}

// GetQuestion godoc
// @ID          getQuestion
// @Summary     Get a question
// @Tags        Questions
// @Produce     json
// @Param       id   path      int  true  "Question ID"
// @Success     200  {object}  domain.Question
// @Failure     416  {object}  handlers.ErrorResponse  "Invalid id or question not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Database query error"
// @Router      /questions/{id} [get]
func (h *Handlers) GetQuestion(c *gin.Context) {
	id, err := questionID(c)
	if err != nil {
		reject(c, err)
		return
	}
	q, err := h.store.GetQuestion(c.Request.Context(), id)
	if err != nil {
		reject(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// AddQuestion godoc
// @ID          addQuestion
// @Summary     Create a question
// @Description Stores a new question. The id is assigned by the server.
// @Tags        Questions
// @Accept      json
// @Produce     plain
// @Param       body  body      domain.NewQuestion  true  "Question payload"
// @Success     200   {string}  string  "question added"
// @Failure     422   {object}  handlers.ErrorResponse  "Malformed body or database query error"
// @Router      /questions [post]
func (h *Handlers) AddQuestion(c *gin.Context) {
	var nq domain.NewQuestion
	if err := c.ShouldBindJSON(&nq); err != nil {
		reject(c, &DecodeError{Err: err})
		return
	}
	nq.Normalize()

	q, err := h.store.AddQuestion(c.Request.Context(), nq)
	if err != nil {
		reject(c, err)
		return
	}
	middleware.LoggerFrom(c).Debug().Stringer("question_id", q.ID).Msg("question added")
	text(c, "question added")
}

// UpdateQuestion godoc
// @ID          updateQuestion
// @Summary     Replace a question
// @Description Overwrites title, content and tags. The id in the path is authoritative; an id in the body is ignored.
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Param       id    path      int              true  "Question ID"
// @Param       body  body      domain.Question  true  "Question payload"
// @Success     200   {object}  domain.Question
// @Failure     416   {object}  handlers.ErrorResponse  "Invalid id or question not found"
// @Failure     422   {object}  handlers.ErrorResponse  "Malformed body or database query error"
// @Router      /questions/{id} [put]
func (h *Handlers) UpdateQuestion(c *gin.Context) {
	id, err := questionID(c)
	if err != nil {
		reject(c, err)
		return
	}
	var q domain.Question
	if err := c.ShouldBindJSON(&q); err != nil {
		reject(c, &DecodeError{Err: err})
		return
	}
	q.Normalize()

	out, err := h.store.UpdateQuestion(c.Request.Context(), q, id)
	if err != nil {
		reject(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// DeleteQuestion godoc
// @ID          deleteQuestion
// @Summary     Delete a question
// @Description Removes the question. Answers referencing it are kept.
// @Tags        Questions
// @Produce     plain
// @Param       id   path      int  true  "Question ID"
// @Success     200  {string}  string  "Question 1 deleted"
// @Failure     416  {object}  handlers.ErrorResponse  "Invalid id or question not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Database query error"
// @Router      /questions/{id} [delete]
func (h *Handlers) DeleteQuestion(c *gin.Context) {
	id, err := questionID(c)
	if err != nil {
		reject(c, err)
		return
	}
	if err := h.store.DeleteQuestion(c.Request.Context(), id); err != nil {
		reject(c, err)
		return
	}
	text(c, fmt.Sprintf("Question %d deleted", id))
}
