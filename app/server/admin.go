package server

import (
	"crypto/subtle"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"golang.org/x/crypto/bcrypt"
)

// adminUser is the only user accepted by the moderation routes.
const adminUser = "admin"

// dummyHash is a valid bcrypt hash (cost=10), compared against when the user name doesn't match
// to keep the response time the same.
const dummyHash = "$2a$10$C615A0mfUEFBupj9qcqhiuBEyf60EqrsakB90CozUoSON8d2Dc1uS"

// adminAuth returns middleware that requires basic auth of the admin user with the bcrypt password hash.
// Without a hash moderation is disabled and the routes answer 404.
func adminAuth(passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if passwordHash == "" {
				rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, nil, "moderation is disabled")
				return
			}
			if !validAdmin(r, passwordHash) {
				w.Header().Set("WWW-Authenticate", `Basic realm="bbs admin", charset="UTF-8"`)
				rest.SendErrorJSON(w, r, log.Default(), http.StatusUnauthorized, nil, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validAdmin(r *http.Request, passwordHash string) bool {
	user, password, ok := r.BasicAuth()
	if !ok {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(adminUser)) == 1
	hashToCheck := dummyHash
	if userOK {
		hashToCheck = passwordHash
	}
	// always run bcrypt comparison so a wrong user name takes as long as a wrong password
	if err := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(password)); err != nil || !userOK {
		return false
	}
	return true
}
