package cli

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"

	"github.com/baobab-edu/peerreview-cli/core"
	"github.com/baobab-edu/peerreview-cli/core/review"
)

const (
	credSaltLen   = 16
	credKeyLen    = 32
	credKeyRounds = 4096
)

// Credentials is what the client needs to open a session. CourseRef is
// either a numeric course id or an enrollment code.
type Credentials struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required"`
	CourseRef string      `json:"course_ref" validate:"required,courseref"`
	Role      review.Role `json:"role"`
}

// storedCredentials is the on-disk form; the password is encrypted.
type storedCredentials struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	CourseRef string      `json:"course_ref"`
	Role      review.Role `json:"role"`
}

// CredentialsManager persists credentials next to the executable with
// the password sealed under a local secret.
type CredentialsManager struct {
	path   string
	secret string
	loc    *Localization
}

func NewCredentialsManager(path string, loc *Localization) *CredentialsManager {
	return &CredentialsManager{
		path:   path,
		secret: core.Conf.GetString("credentialsSecret"),
		loc:    loc,
	}
}

func (m *CredentialsManager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

func (m *CredentialsManager) Load() (Credentials, error) {
	var creds Credentials

	data, err := os.ReadFile(m.path)
	if err != nil {
		return creds, errors.Wrap(err, "credentials.Load")
	}
	var stored storedCredentials
	if err = json.Unmarshal(data, &stored); err != nil {
		return creds, errors.Wrap(err, "credentials.Load")
	}
	password, err := decrypt(stored.Password, m.secret)
	if err != nil {
		return creds, errors.Wrap(err, "credentials.Load")
	}
	creds = Credentials{
		Email:     stored.Email,
		Password:  password,
		CourseRef: stored.CourseRef,
		Role:      stored.Role,
	}
	if err = core.Validate.Struct(creds); err != nil {
		return creds, core.NewValidationError(err)
	}
	return creds, nil
}

func (m *CredentialsManager) Save(creds Credentials) error {
	sealed, err := encrypt(creds.Password, m.secret)
	if err != nil {
		return errors.Wrap(err, "credentials.Save")
	}
	data, err := json.MarshalIndent(storedCredentials{
		Email:     creds.Email,
		Password:  sealed,
		CourseRef: creds.CourseRef,
		Role:      creds.Role,
	}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "credentials.Save")
	}
	return errors.Wrap(os.WriteFile(m.path, data, 0o600), "credentials.Save")
}

func (m *CredentialsManager) Delete() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "credentials.Delete")
	}
	return nil
}

// Prompt collects credentials interactively. Any cancelled field aborts
// the whole flow.
func (m *CredentialsManager) Prompt(prompt Prompter) core.Result[Credentials] {
	var creds Credentials

	email := prompt.Inline(m.loc.Text(InsertEmail))
	if !email.IsDone() {
		return core.Cancel[Credentials]()
	}
	creds.Email = core.CleanString(email.Value, true)

	password, err := prompt.Password(m.loc.Text(InsertPassword))
	if err != nil {
		return core.Cancel[Credentials]()
	}
	creds.Password = password

	course := prompt.Inline(m.loc.Text(InsertCourseID))
	if !course.IsDone() {
		return core.Cancel[Credentials]()
	}
	creds.CourseRef = core.CleanString(course.Value)

	role := prompt.Inline(m.loc.Text(InsertRole))
	if !role.IsDone() {
		return core.Cancel[Credentials]()
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(role.Value))
	if convErr != nil || !review.Role(n).Valid() {
		return core.Fail[Credentials](m.loc.Text(InvalidInput))
	}
	creds.Role = review.Role(n)

	if err := core.Validate.Struct(creds); err != nil {
		verr := core.NewValidationError(err)
		return core.Fail[Credentials](verr.Error())
	}
	return core.Ok(creds)
}

func deriveKey(secret string, salt []byte) []byte {
	return pbkdf2.Key([]byte(secret), salt, credKeyRounds, credKeyLen, sha256.New)
}

// encrypt seals plaintext with AES-GCM; salt and nonce travel with the
// ciphertext, base64-encoded.
func encrypt(plaintext, secret string) (string, error) {
	salt := make([]byte, credSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}
	block, err := aes.NewCipher(deriveKey(secret, salt))
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	buf := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, sealed...)
	return base64.StdEncoding.EncodeToString(buf), nil
}

func decrypt(encoded, secret string) (string, error) {
	buf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	if len(buf) < credSaltLen {
		return "", errors.New("credentials: ciphertext too short")
	}
	salt, rest := buf[:credSaltLen], buf[credSaltLen:]

	block, err := aes.NewCipher(deriveKey(secret, salt))
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	if len(rest) < gcm.NonceSize() {
		return "", errors.New("credentials: ciphertext too short")
	}
	nonce, sealed := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
