package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/service"

	"github.com/gorilla/mux"
)

type CourseHandler struct {
	courseSvc service.CourseService
}

func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)

	courses, err := h.courseSvc.ListCourses(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: courses, TotalCount: int32(len(courses))})
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid course id"})
		return
	}

	course, err := h.courseSvc.GetCourse(r.Context(), int32(id))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)

	var course domain.Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.courseSvc.AddCourse(r.Context(), principal, &course); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, course)
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid course id"})
		return
	}

	var course domain.Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	course.ID = int32(id)

	if err := h.courseSvc.UpdateCourse(r.Context(), principal, &course); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, course)
}
