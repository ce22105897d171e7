package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baobab-edu/peerreview-cli/core"
	"github.com/baobab-edu/peerreview-cli/core/review"
	"github.com/baobab-edu/peerreview-cli/services/peerapi"
)

const loginMaxAttempts = 3

// LoginResult is everything the menus need after a successful login.
type LoginResult struct {
	Session          review.Session
	Course           review.RoleResponse
	CredentialsSaved bool
}

// LoginManager drives authentication: token exchange, on-the-fly course
// enrollment when the course reference is an access key, the role check,
// and the offer to persist credentials.
type LoginManager struct {
	api    *peerapi.Client
	store  *CredentialsManager
	prompt Prompter
	con    *console
	log    core.Logger
}

func NewLoginManager(api *peerapi.Client, store *CredentialsManager, prompt Prompter, con *console, log core.Logger) *LoginManager {
	return &LoginManager{api: api, store: store, prompt: prompt, con: con, log: log}
}

// Attempt runs up to three full login rounds. alreadySaved tells whether
// the credentials came from disk, so the save offer is skipped.
func (m *LoginManager) Attempt(ctx context.Context, creds Credentials, alreadySaved bool) core.Result[LoginResult] {
	loc := m.con.loc
	website := core.Conf.GetInt("website")

	var (
		loginDone bool
		token     uuid.UUID
	)
	for attempt := 1; attempt <= loginMaxAttempts; attempt++ {
		m.con.Message(fmt.Sprintf("%s (%d/%d)", loc.Text(LoggingIn), attempt, loginMaxAttempts))
		m.con.Blank()

		dotsCtx, stopDots := context.WithCancel(ctx)
		if attempt == 1 {
			go loadingDots(dotsCtx, m.con)
		}

		if !loginDone {
			body, ok := m.api.PostForBody(ctx, review.LoginURL, review.LoginRequest{
				Email:    creds.Email,
				Password: creds.Password,
				Website:  website,
			})
			stopDots()
			m.con.Blank()
			if !ok {
				m.con.Error(loc.Text(LoginFailed))
				continue
			}

			parsed, err := parseLoginToken(body)
			if err != nil {
				m.log.Error("login: bad token payload", "error", err)
				m.con.Error(loc.Text(LoginFailed))
				continue
			}
			token = parsed
			m.con.Success("1. " + loc.Text(LoggingIn) + " OK")

			// A non-numeric course reference is an access key: the user
			// is not enrolled yet.
			if _, err := strconv.Atoi(creds.CourseRef); err != nil {
				enrolled := m.enroll(ctx, &creds, website)
				if !enrolled.IsDone() {
					if enrolled.IsCancelled() {
						return core.Cancel[LoginResult]()
					}
					m.con.Error(enrolled.Message())
					continue
				}
				creds.CourseRef = enrolled.Value
			}
			loginDone = true
		} else {
			stopDots()
		}

		courseID, err := strconv.Atoi(creds.CourseRef)
		if err != nil {
			continue
		}

		roleBody, ok := m.api.PostForBody(ctx, review.RoleURL, review.RoleRequest{
			Role:          creds.Role,
			CourseClassID: courseID,
			Website:       website,
		})
		if !ok {
			m.con.Error(loc.Text(LoginFailed))
			continue
		}
		var course review.RoleResponse
		if err := json.Unmarshal(roleBody, &course); err != nil {
			m.log.Error("login: bad role payload", "error", err)
			m.con.Error(loc.Text(LoginFailed))
			continue
		}
		m.con.Success("2. " + course.ClassName)

		saved := alreadySaved
		if !saved {
			saved = m.offerSave(creds)
		}
		return core.Ok(LoginResult{
			Session: review.Session{
				CourseID: courseID,
				Token:    token,
				Role:     creds.Role,
				Website:  website,
			},
			Course:           course,
			CredentialsSaved: saved,
		})
	}
	return core.Fail[LoginResult](loc.Text(LoginFailed))
}

// parseLoginToken extracts the session guid, tolerating the braced form
// the API sometimes returns.
func parseLoginToken(body []byte) (uuid.UUID, error) {
	var resp review.LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return uuid.Nil, err
	}
	clean := strings.NewReplacer("{", "", "}", "").Replace(resp.Token)
	return uuid.Parse(clean)
}

// enroll registers the user on the course named by the access key and
// returns the assigned course id.
func (m *LoginManager) enroll(ctx context.Context, creds *Credentials, website int) core.Result[string] {
	loc := m.con.loc

	var name string
	for {
		r := m.prompt.Inline(loc.Text(InsertName))
		if r.IsCancelled() {
			return core.Cancel[string]()
		}
		if name = strings.TrimSpace(r.Value); name != "" {
			break
		}
		m.con.Error(loc.Text(InvalidInput))
	}

	var registerNumber int
	for {
		r := m.prompt.Inline(loc.Text(InsertRegisterNumber))
		if r.IsCancelled() {
			return core.Cancel[string]()
		}
		n, err := strconv.Atoi(strings.TrimSpace(r.Value))
		if err == nil {
			registerNumber = n
			break
		}
		m.con.Error(loc.Text(InvalidInput))
	}

	body, ok := m.api.PostForBody(ctx, review.EnrollURL, review.EnrollRequest{
		CourseKey:      creds.CourseRef,
		FullName:       name,
		RegisterNumber: registerNumber,
		Website:        website,
	})
	if !ok {
		return core.Fail[string](loc.Text(LoginFailed))
	}
	courseID := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if _, err := strconv.Atoi(courseID); err != nil {
		return core.Fail[string](loc.Text(LoginFailed))
	}
	m.con.Success("CourseID: " + courseID)
	return core.Ok(courseID)
}

func (m *LoginManager) offerSave(creds Credentials) bool {
	loc := m.con.loc
	for {
		r := m.prompt.Inline(loc.Text(SaveCredentialsQuestion))
		if r.IsCancelled() {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(r.Value)) {
		case loc.Text(ConfirmationYes):
			if err := m.store.Save(creds); err != nil {
				m.log.Error("login: save credentials", "error", err)
				return false
			}
			return true
		case loc.Text(ConfirmationNo):
			return false
		}
	}
}

// loadingDots prints a dot per second until ctx is cancelled, so slow
// first connections do not look like a hang.
func loadingDots(ctx context.Context, con *console) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	first := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if first {
				fmt.Fprint(con.out, con.loc.Text(LoggingIn)+" ...")
				first = false
			} else {
				fmt.Fprint(con.out, ".")
			}
		}
	}
}
