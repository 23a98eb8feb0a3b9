package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/azure"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		panic(err)
	}

	//Azure Storageのゲートウェイ生成
	tables, err := azure.NewTableStore(cfg.StorageConnectionString)
	if err != nil {
		panic(err)
	}
	blobs, err := azure.NewBlobStore(cfg.StorageConnectionString)
	if err != nil {
		panic(err)
	}
	queues, err := azure.NewQueueStore(cfg.StorageConnectionString)
	if err != nil {
		panic(err)
	}
	files, err := azure.NewFileStore(cfg.StorageConnectionString)
	if err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(txm, userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	catalogUC := usecase.NewCatalogUsecase(tables, clock)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, tables, clock)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, orderItemRepo, cartRepo, cartItemRepo, queues, clock)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, clock)
	profileUC := usecase.NewProfileUsecase(tables, clock)
	mediaUC := usecase.NewMediaUsecase(blobs, queues, clock)
	contractUC := usecase.NewContractUsecase(files, idGen, clock)
	queueUC := usecase.NewQueueUsecase(queues, clock)

	//Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(registerUC, loginUC),
		Product:    handler.NewProductHandler(catalogUC),
		Cart:       handler.NewCartHandler(cartUC),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		Profile:    handler.NewProfileHandler(profileUC),
		Media:      handler.NewMediaHandler(mediaUC),
		Contract:   handler.NewContractHandler(contractUC),
		Queue:      handler.NewQueueHandler(queueUC),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, customerRepo, handlers); err != nil {
		panic(err)
	}
}
