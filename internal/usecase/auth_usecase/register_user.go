package auth

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterUserInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
	City        string
	PostalCode  string
	Country     string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User     model.User
	Customer model.Customer
}

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrNameRequired       = errors.New("name required")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
// User・Customer・空のCartを1トランザクションで作る。
type RegisterUserUsecase struct {
	txm      repository.TransactionManager
	userRepo repository.UserRepository
	hasher   PasswordHasher
	clock    Clock
}

// DI
func NewRegisterUserUsecase(
	txm repository.TransactionManager,
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		txm:      txm,
		userRepo: userRepo,
		hasher:   hasher,
		clock:    clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	email := strings.TrimSpace(in.Email)

	// emailの形式チェック
	if !isValidEmailFormat(email) {
		return out, ErrInvalidEmailFormat
	}

	// passwordの長さチェック（最小8文字）
	if len(in.Password) < 8 {
		return out, ErrPasswordTooShort
	}

	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return out, ErrNameRequired
	}

	// email重複チェック
	_, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return out, ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()

	// User・Customer・空のCartはまとめて作る（途中で失敗したら全部巻き戻す）
	err = u.txm.WithinTx(ctx, func(r repository.TxRepos) error {
		username, err := u.deriveUsername(ctx, r, email)
		if err != nil {
			return err
		}

		user := &model.User{
			Username:     username,
			Email:        email,
			PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
			Role:         model.RoleCustomer,
			IsActive:     true,
			CreatedDate:  now,
		}
		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}

		customer := &model.Customer{
			UserID:      user.ID,
			FirstName:   strings.TrimSpace(in.FirstName),
			LastName:    strings.TrimSpace(in.LastName),
			PhoneNumber: in.PhoneNumber,
			Address:     in.Address,
			City:        in.City,
			PostalCode:  in.PostalCode,
			Country:     in.Country,
		}
		if err := r.Customers().Create(ctx, customer); err != nil {
			return err
		}

		cart := &model.Cart{
			CustomerID:  customer.ID,
			CreatedDate: now,
			UpdatedDate: now,
		}
		if err := r.Carts().Create(ctx, cart); err != nil {
			return err
		}

		out.User = *user
		out.Customer = *customer
		return nil
	})
	if err != nil {
		return RegisterUserOutput{}, err
	}

	// 返すときはハッシュを空にして漏洩防止
	out.User.PasswordHash = ""
	return out, nil
}

// メールのローカル部からusernameを作る。衝突したら連番を付ける。
func (u *RegisterUserUsecase) deriveUsername(ctx context.Context, r repository.TxRepos, email string) (string, error) {
	base := email
	if at := strings.Index(email, "@"); at > 0 {
		base = email[:at]
	}

	candidate := base
	for i := 1; ; i++ {
		exists, err := r.Users().UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(i)
	}
}

// メールチェック
func isValidEmailFormat(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
