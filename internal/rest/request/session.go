package request

import "github.com/movietalk/feed-client/domain"

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *Login) ToDomain() domain.Credentials {
	return domain.Credentials{Email: r.Email, Password: r.Password}
}

type GoogleLogin struct {
	Credential string `json:"credential" binding:"required"`
}

type Register struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *Register) ToDomain() domain.Registration {
	return domain.Registration{FullName: r.FullName, Email: r.Email, Password: r.Password}
}
