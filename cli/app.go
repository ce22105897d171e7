package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/baobab-edu/peerreview-cli/core"
	"github.com/baobab-edu/peerreview-cli/core/review"
	"github.com/baobab-edu/peerreview-cli/services/peerapi"
)

// Run drives one whole client session: credentials, login, version
// check, then the role menu until exit.
func Run(ctx context.Context, out io.Writer, api *peerapi.Client, log core.Logger) error {
	loc := NewLocalization(core.Conf.GetString("language"))
	prompt := NewTerminalPrompter()
	con := &console{out: out, prompt: prompt, loc: loc, titles: newTitleGate(nil)}
	store := NewCredentialsManager(core.Conf.GetString("credentialsFile"), loc)

	fmt.Fprintf(out, "%s\n\n", core.Conf.GetString("appName"))
	fmt.Fprintf(out, "Version: %s - Api version: %s\n\n",
		core.Conf.GetString("swVersion"), core.Conf.GetString("apiVersion"))

	creds, fromDisk, ok := loadOrPromptCredentials(store, prompt, con)
	if !ok {
		return nil
	}

	login := NewLoginManager(api, store, prompt, con, log)
	result := login.Attempt(ctx, creds, fromDisk)
	if result.IsCancelled() {
		return nil
	}
	if !result.IsDone() {
		return errors.New(result.Message())
	}
	session := result.Value.Session

	con.Blank()
	titleColor.Fprintf(out, " Corso %d - %s\n", session.CourseID, result.Value.Course.ClassName)
	con.Blank()

	if !checkVersion(con, result.Value.Course.SoftwareVersion, log) {
		return nil
	}

	opts := review.DefaultAssignOptions()
	base := menuBase{
		con:              con,
		session:          session,
		opts:             opts,
		tables:           NewTableHelper(out, opts, loc, nil),
		store:            store,
		credentialsSaved: result.Value.CredentialsSaved,
	}

	var menu Menu
	switch session.Role {
	case review.RoleTeacher:
		menu = NewTeacherMenu(base, review.NewTeacherCache(session, api))
	default:
		menu = NewStudentMenu(base, review.NewStudentCache(session, api), api)
	}
	RunMenu(ctx, menu, con)
	return nil
}

// loadOrPromptCredentials tries the saved file first and falls back to
// asking. Failed validation of typed-in credentials loops the prompt;
// Esc gives up.
func loadOrPromptCredentials(store *CredentialsManager, prompt Prompter, con *console) (Credentials, bool, bool) {
	if store.Exists() {
		creds, err := store.Load()
		if err == nil {
			return creds, true, true
		}
		// A stale or corrupt file should not lock the user out.
		con.Error(err.Error())
	}
	for {
		res := store.Prompt(prompt)
		if res.IsCancelled() {
			return Credentials{}, false, false
		}
		if res.IsDone() {
			return res.Value, false, true
		}
		con.Error(res.Message())
	}
}

// checkVersion compares the local build against what the server
// advertises. An incompatible version stops the client.
func checkVersion(con *console, remote string, log core.Logger) bool {
	current := core.Conf.GetString("swVersion")
	cmp, err := review.CompareVersions(current, remote)
	if err != nil {
		log.Warn("version check failed", "error", err)
		return true
	}
	switch cmp {
	case review.UpdateRecommended:
		con.Error(con.loc.Text(UpdateRecommendedMsg))
	case review.Incompatible:
		con.Error(con.loc.Text(IncompatibleVersionMsg))
		return false
	}
	return true
}
