package api

// User mirrors the platform's user DTO.
type User struct {
	ID            int64    `json:"id"`
	Email         string   `json:"email"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	EmailVerified bool     `json:"emailVerified"`
	Roles         []string `json:"roles"`
}

// AuthSession is the session payload returned by login and refresh.
// The refresh token never appears here: the server keeps it in an HttpOnly
// cookie that travels through the client's cookie jar.
type AuthSession struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"` // seconds
	User        *User  `json:"user"`
}

// PreRegistration carries the data needed to pre-fill the registration form
// after a login attempt with an unknown email.
type PreRegistration struct {
	Email         string `json:"email"`
	PasswordToken string `json:"passwordToken"`
}

// LoginResult is the discriminated login envelope. UserExists=false means no
// session was established and the caller should continue with registration,
// forwarding PreRegistrationData.PasswordToken.
type LoginResult struct {
	UserExists          bool             `json:"userExists"`
	AuthData            *AuthSession     `json:"authData,omitempty"`
	PreRegistrationData *PreRegistration `json:"preRegistrationData,omitempty"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// HealthStatus is the response of the unwrapped GET /health endpoint.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// CommentAuthor identifies who wrote a comment.
type CommentAuthor struct {
	UserID    int64  `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Comment mirrors the platform's comment DTO.
type Comment struct {
	ID                   int64         `json:"id"`
	StudienkollegID      string        `json:"studienkollegId"`
	Author               CommentAuthor `json:"author"`
	Title                string        `json:"title"`
	Content              string        `json:"content"`
	CreatedAt            string        `json:"createdAt"` // "dd.MM.yyyy HH:mm"
	LikesCount           int           `json:"likesCount"`
	IsLikedByCurrentUser bool          `json:"isLikedByCurrentUser"`
	IsOwnComment         bool          `json:"isOwnComment"`
}

// CreateCommentRequest is the payload for creating a comment.
type CreateCommentRequest struct {
	StudienkollegID string `json:"studienkollegId"`
	Title           string `json:"title"`
	Content         string `json:"content"`
}

// UpdateCommentRequest updates a comment's title and content. Likes and
// authorship are untouched by updates.
type UpdateCommentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
