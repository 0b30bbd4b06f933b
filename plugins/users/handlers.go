package users

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/appforge/pipegate/model/validated"
	"github.com/appforge/pipegate/util"
)

func (u *Users) getUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		util.WriteBackJSON(w, map[string]interface{}{
			"message": "users retrieved successfully",
			"data":    u.store.List(),
		}, http.StatusOK)
	}
}

func (u *Users) getUserWithID() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		vars := mux.Vars(req)
		id, ok := vars["id"]
		if !ok {
			util.WriteBackError(w, `can't get a user without an "id"`, http.StatusBadRequest)
			return
		}

		user, found := u.store.Get(id)
		if !found {
			util.WriteBackError(w, fmt.Sprintf(`user with "id"="%s" not found`, id), http.StatusNotFound)
			return
		}
		util.WriteBackJSON(w, map[string]interface{}{
			"message": "user retrieved successfully",
			"data":    user,
		}, http.StatusOK)
	}
}

func (u *Users) postUser() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, err := validated.FromContext(req.Context())
		if err != nil {
			log.Errorln(logTag, ":", err)
			util.WriteBackError(w, "an error occurred while creating the user", http.StatusInternalServerError)
			return
		}

		user := User{
			Name:  body["name"].(string),
			Email: body["email"].(string),
		}
		if age, ok := body["age"].(float64); ok {
			user.Age = int(age)
		}
		if password, ok := body["password"].(string); ok {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				log.Errorln(logTag, ": error hashing password:", err)
				util.WriteBackError(w, "an error occurred while creating the user", http.StatusInternalServerError)
				return
			}
			user.PasswordHash = string(hash)
		}

		created := u.store.Add(user)
		util.WriteBackJSON(w, map[string]interface{}{
			"message": "user created successfully",
			"user":    created,
		}, http.StatusCreated)
	}
}
