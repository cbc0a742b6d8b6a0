package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/delivery/web/middleware"
	"storefront/internal/delivery/web/router"
	"storefront/internal/delivery/web/router/handler"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/infra/qrcode"
	"storefront/internal/infra/storage"
	"storefront/internal/testutil"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Tr1cky-Pangolin"

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type testApp struct {
	e        *echo.Echo
	products repository.ProductRepository
	category *entity.Category
	images   service.ImageStore
	users    usecase.UserUsecase
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "10MB"
	cfg.SecretKey.Session = "test-session-secret"
	cfg.Session = &config.SessionConfig{CookieName: "sessionid", MaxAge: 14 * 24 * time.Hour}
	cfg.Auth = &config.AuthConfig{BcryptCost: bcrypt.MinCost}
	cfg.PasswordStrength = &config.PasswordStrengthConfig{MinLength: 8}
	cfg.Media = &config.MediaConfig{BucketURL: "mem://", URLPrefix: "/media/", MaxImageSize: 1 << 20}
	cfg.QRCode = &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "medium"}

	return cfg
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := testutil.NewTestDB(t)

	categoryRepo := postgres.NewCategoryRepository(db)
	productRepo := postgres.NewProductRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	userRepo := postgres.NewUserRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	txManager := postgres.NewTransactionManager(db)

	tokens, err := auth.NewSessionTokenService(cfg)
	require.NoError(t, err)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	images := storage.NewBlobImageStore(bucket, cfg.Media.MaxImageSize)

	cartUC := impl.NewCartService(impl.CartServiceParams{ProductRepo: productRepo, Logger: logger})
	catalogUC := impl.NewCatalogService(impl.CatalogServiceParams{
		CategoryRepo: categoryRepo, ProductRepo: productRepo, ReviewRepo: reviewRepo, Logger: logger,
	})
	reviewUC := impl.NewReviewService(impl.ReviewServiceParams{ProductRepo: productRepo, ReviewRepo: reviewRepo, Logger: logger})
	productUC := impl.NewProductService(impl.ProductServiceParams{
		ProductRepo: productRepo, CategoryRepo: categoryRepo, ImageStore: images, Config: cfg, Logger: logger,
	})
	userUC := impl.NewUserService(impl.UserServiceParams{
		UserRepo: userRepo, OrderRepo: orderRepo, PasswordHasher: auth.NewBcryptHasher(cfg), Logger: logger,
	})
	sessionUC := impl.NewSessionService(impl.SessionServiceParams{
		SessionRepo: sessionRepo, UserRepo: userRepo, TxManager: txManager, Tokens: tokens, Config: cfg, Logger: logger,
	})

	pages := handler.NewPageComposer(handler.PageComposerParams{CartUC: cartUC, Logger: logger})

	e, err := NewEcho(ServerParams{
		Cfg:    cfg,
		Logger: logger,
		Pages:  pages,
		RouterParams: router.RouterParams{
			CatalogHandler: handler.NewCatalogHandler(handler.CatalogHandlerParams{
				CatalogUC: catalogUC, QRCode: qrcode.NewQRCodeServiceFromConfig(cfg), Pages: pages, Logger: logger,
			}),
			CartHandler:    handler.NewCartHandler(handler.CartHandlerParams{CartUC: cartUC, Pages: pages, Logger: logger}),
			ReviewHandler:  handler.NewReviewHandler(handler.ReviewHandlerParams{ReviewUC: reviewUC, Logger: logger}),
			ProductHandler: handler.NewProductHandler(handler.ProductHandlerParams{ProductUC: productUC, CatalogUC: catalogUC, Pages: pages, Logger: logger}),
			AccountHandler: handler.NewAccountHandler(handler.AccountHandlerParams{UserUC: userUC, SessionUC: sessionUC, Pages: pages, Logger: logger}),
			MediaHandler:   handler.NewMediaHandler(handler.MediaHandlerParams{Images: images, Logger: logger}),
			SessionMiddleware: middleware.NewSessionMiddleware(sessionUC, cfg, logger),
			Config:            cfg,
		},
	})
	require.NoError(t, err)

	ctx := context.Background()
	category := &entity.Category{Name: "Apparel", Slug: "apparel"}
	require.NoError(t, categoryRepo.Create(ctx, category))

	return &testApp{
		e:        e,
		products: productRepo,
		category: category,
		images:   images,
		users:    userUC,
	}
}

func (a *testApp) addProduct(t *testing.T, name, slug, price string, author *entity.User) *entity.Product {
	t.Helper()

	product := &entity.Product{
		Name:        name,
		Slug:        &slug,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		CategoryID:  a.category.ID,
	}
	if author != nil {
		product.CreatedByID = &author.ID
	}
	require.NoError(t, a.products.Create(context.Background(), product))

	return product
}

func (a *testApp) addUser(t *testing.T, username string, staff bool) *entity.User {
	t.Helper()

	user, err := a.users.CreateUser(context.Background(), usecase.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: testPassword,
		IsStaff:  staff,
	})
	require.NoError(t, err)

	return user
}

// browser keeps cookies between requests like a user agent would.
type browser struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) browser() *browser {
	return &browser{app: a, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	b.app.e.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		b.cookies[cookie.Name] = cookie
	}

	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	return b.do(req)
}

func (b *browser) postAJAX(path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	return b.do(req)
}

func (b *browser) login(t *testing.T, username string) {
	t.Helper()

	rec := b.postForm("/login/", url.Values{"username": {username}, "password": {testPassword}})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/dashboard/", rec.Header().Get(echo.HeaderLocation))
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.browser().get("/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, map[string]any{"status": "ok"}, body["data"])
}

func TestPages_TrailingSlashRedirect(t *testing.T) {
	app := newTestApp(t)

	rec := app.browser().get("/about")

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/about/", rec.Header().Get(echo.HeaderLocation))
}

func TestHome_ListsLatestProducts(t *testing.T) {
	app := newTestApp(t)
	for _, name := range []string{"Alpha", "Beta", "Gamma", "Delta"} {
		app.addProduct(t, name, strings.ToLower(name), "1.00", nil)
	}

	rec := app.browser().get("/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "Alpha")
	for _, name := range []string{"Beta", "Gamma", "Delta"} {
		assert.Contains(t, body, name)
	}
	assert.Empty(t, rec.Result().Cookies(), "an untouched anonymous session is not stored")
}

func TestShop_UnknownCategoryIsNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.browser().get("/shop/?category=nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category not found.")
}

func TestProductDetail(t *testing.T) {
	app := newTestApp(t)
	app.addProduct(t, "Blue Shirt", "blue-shirt", "19.99", nil)
	app.addProduct(t, "Red Shirt", "red-shirt", "9.99", nil)

	t.Run("renders product and recommendations", func(t *testing.T) {
		rec := app.browser().get("/shop/blue-shirt/")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Blue Shirt")
		assert.Contains(t, rec.Body.String(), "Red Shirt")
	})

	t.Run("unknown slug", func(t *testing.T) {
		rec := app.browser().get("/shop/missing/")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Product not found.")
	})

	t.Run("unknown slug as JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/shop/missing/", nil)
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		rec := app.browser().do(req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeJSON(t, rec)
		assert.Equal(t, "PRODUCT_NOT_FOUND", body["error"].(map[string]any)["code"])
	})

	t.Run("qr code", func(t *testing.T) {
		rec := app.browser().get("/shop/blue-shirt/qr.png")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
	})
}

func TestCart_AJAX(t *testing.T) {
	app := newTestApp(t)
	app.addProduct(t, "Blue Shirt", "blue-shirt", "19.99", nil)
	b := app.browser()

	rec := b.postAJAX("/add-to-cart/blue-shirt/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true, "cart_count": float64(1), "message": "Added Blue Shirt to cart."}, decodeJSON(t, rec))
	require.Contains(t, b.cookies, "sessionid", "the first saved session issues the cookie")

	rec = b.postAJAX("/add-to-cart/blue-shirt/", "")
	assert.Equal(t, float64(2), decodeJSON(t, rec)["cart_count"])
	assert.Empty(t, rec.Result().Cookies(), "a known session keeps its cookie")

	rec = b.get("/")
	assert.Contains(t, rec.Body.String(), `<span class="badge bg-danger">2</span>`)
	assert.Contains(t, rec.Body.String(), "Total: $39.98")

	rec = b.postAJAX("/remove-from-cart/blue-shirt/", "")
	assert.Equal(t, map[string]any{"success": true, "cart_count": float64(0), "message": "Removed Blue Shirt from cart."}, decodeJSON(t, rec))

	rec = b.postAJAX("/remove-from-cart/blue-shirt/", "")
	assert.Equal(t, map[string]any{"success": true, "cart_count": float64(0), "message": ""}, decodeJSON(t, rec))
}

func TestCart_RedirectsAndRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	app.addProduct(t, "Blue Shirt", "blue-shirt", "19.99", nil)
	app.addUser(t, "alice", false)
	b := app.browser()

	rec := b.postForm("/add-to-cart/blue-shirt/", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/cart/", rec.Header().Get(echo.HeaderLocation))

	rec = b.get("/cart/")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login/?next=%2Fcart%2F", rec.Header().Get(echo.HeaderLocation))

	b.login(t, "alice")

	rec = b.get("/cart/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Added Blue Shirt to cart.", "flashes survive the login")
	assert.Contains(t, body, "You are now logged in as alice.")
	assert.Contains(t, body, "<strong>$19.99</strong>", "the cart survives the login")

	rec = b.get("/checkout/")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCart_UnknownProduct(t *testing.T) {
	app := newTestApp(t)

	rec := app.browser().postAJAX("/add-to-cart/missing/", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReview(t *testing.T) {
	app := newTestApp(t)
	app.addProduct(t, "Blue Shirt", "blue-shirt", "19.99", nil)
	app.addUser(t, "alice", false)

	t.Run("anonymous", func(t *testing.T) {
		rec := app.browser().postAJAX("/shop/blue-shirt/review/", `{"rating": 5, "comment": "great"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, map[string]any{"error": "Authentication required."}, decodeJSON(t, rec))
	})

	b := app.browser()
	b.login(t, "alice")

	t.Run("json body", func(t *testing.T) {
		rec := b.postAJAX("/shop/blue-shirt/review/", `{"rating": 5, "comment": "great"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeJSON(t, rec)
		assert.Equal(t, "alice", body["reviewer"])
		assert.Equal(t, float64(5), body["rating"])
		assert.Equal(t, "great", body["comment"])
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`, body["created_at"])
	})

	t.Run("form body fallback", func(t *testing.T) {
		rec := b.postForm("/shop/blue-shirt/review/", url.Values{"rating": {"4"}, "comment": {"fine"}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(4), decodeJSON(t, rec)["rating"])
	})

	t.Run("missing comment", func(t *testing.T) {
		rec := b.postAJAX("/shop/blue-shirt/review/", `{"rating": 5}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]any{"error": "Rating and comment are required."}, decodeJSON(t, rec))
	})

	t.Run("rating out of range", func(t *testing.T) {
		rec := b.postAJAX("/shop/blue-shirt/review/", `{"rating": "9", "comment": "x"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]any{"error": "Rating must be an integer between 1 and 5."}, decodeJSON(t, rec))
	})

	t.Run("reviews show newest first", func(t *testing.T) {
		rec := b.get("/shop/blue-shirt/")

		body := rec.Body.String()
		require.Contains(t, body, "fine")
		assert.Less(t, strings.Index(body, "fine"), strings.Index(body, "great"))
	})
}

func productUpload(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "shirt.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestAddProduct(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "alice", false)
	app.addUser(t, "staff", true)

	fields := map[string]string{
		"name":        "Green Shirt",
		"slug":        "green-shirt",
		"description": "Soft cotton",
		"price":       "12.50",
		"category":    "1",
	}

	t.Run("anonymous visitors are forbidden", func(t *testing.T) {
		rec := app.browser().get("/shop/add/")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("regular users are forbidden and nothing is created", func(t *testing.T) {
		b := app.browser()
		b.login(t, "alice")

		body, contentType := productUpload(t, fields, pngHeader)
		req := httptest.NewRequest(http.MethodPost, "/shop/add/", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := b.do(req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		_, err := app.products.FindBySlug(context.Background(), "green-shirt")
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})

	b := app.browser()
	b.login(t, "staff")

	t.Run("staff see the form", func(t *testing.T) {
		rec := b.get("/shop/add/")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Apparel")
	})

	t.Run("invalid form re-renders with errors", func(t *testing.T) {
		invalid := map[string]string{"name": "X", "description": "d", "price": "-1", "category": "1"}
		body, contentType := productUpload(t, invalid, nil)
		req := httptest.NewRequest(http.MethodPost, "/shop/add/", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := b.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "This field is required.")
	})

	t.Run("staff create a product", func(t *testing.T) {
		body, contentType := productUpload(t, fields, pngHeader)
		req := httptest.NewRequest(http.MethodPost, "/shop/add/", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := b.do(req)

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/shop/", rec.Header().Get(echo.HeaderLocation))

		product, err := app.products.FindBySlug(context.Background(), "green-shirt")
		require.NoError(t, err)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("12.50")))
		require.NotEmpty(t, product.Image)

		rec = b.get("/media/" + product.Image)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, pngHeader, rec.Body.Bytes())

		rec = b.get("/shop/")
		assert.Contains(t, rec.Body.String(), "Product added successfully.")
	})
}

func TestEditProduct(t *testing.T) {
	app := newTestApp(t)
	author := app.addUser(t, "alice", false)
	app.addUser(t, "bob", true)
	app.addProduct(t, "Blue Shirt", "blue-shirt", "19.99", author)

	edit := map[string]string{
		"name":        "Navy Shirt",
		"slug":        "navy-shirt",
		"description": "Darker",
		"price":       "21.00",
		"category":    "1",
	}

	t.Run("other users are sent back to the product", func(t *testing.T) {
		b := app.browser()
		b.login(t, "bob")

		rec := b.get("/shop/blue-shirt/edit/")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/shop/blue-shirt/", rec.Header().Get(echo.HeaderLocation))

		body, contentType := productUpload(t, edit, nil)
		req := httptest.NewRequest(http.MethodPost, "/shop/blue-shirt/edit/", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec = b.do(req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/shop/blue-shirt/", rec.Header().Get(echo.HeaderLocation))
		product, err := app.products.FindBySlug(context.Background(), "blue-shirt")
		require.NoError(t, err)
		assert.Equal(t, "Blue Shirt", product.Name)
	})

	t.Run("anonymous visitors log in first", func(t *testing.T) {
		rec := app.browser().get("/shop/blue-shirt/edit/")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login/?next=%2Fshop%2Fblue-shirt%2Fedit%2F", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("author edits", func(t *testing.T) {
		b := app.browser()
		b.login(t, "alice")

		rec := b.get("/shop/blue-shirt/edit/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `value="19.99"`)

		body, contentType := productUpload(t, edit, nil)
		req := httptest.NewRequest(http.MethodPost, "/shop/blue-shirt/edit/", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec = b.do(req)

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/shop/navy-shirt/", rec.Header().Get(echo.HeaderLocation))
	})
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "alice", false)

	t.Run("success logs in", func(t *testing.T) {
		b := app.browser()
		rec := b.postForm("/register/", url.Values{
			"username":  {"carol"},
			"email":     {"carol@example.com"},
			"password1": {testPassword},
			"password2": {testPassword},
		})

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/dashboard/", rec.Header().Get(echo.HeaderLocation))

		rec = b.get("/dashboard/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Registration successful.")
		assert.Contains(t, rec.Body.String(), "carol@example.com")
	})

	t.Run("taken username and mismatched passwords", func(t *testing.T) {
		rec := app.browser().postForm("/register/", url.Values{
			"username":  {"alice"},
			"email":     {"alice2@example.com"},
			"password1": {testPassword},
			"password2": {testPassword + "x"},
		})

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Unsuccessful registration. Invalid information.")
		assert.Contains(t, body, "A user with that username already exists.")
		assert.Contains(t, body, "The two password fields didn’t match.")
	})

	t.Run("structural errors", func(t *testing.T) {
		rec := app.browser().postForm("/register/", url.Values{"username": {"no spaces"}, "email": {"nope"}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Enter a valid email address.")
	})
}

func TestLoginAndLogout(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "alice", false)

	t.Run("bad password re-renders", func(t *testing.T) {
		rec := app.browser().postForm("/login/", url.Values{"username": {"alice"}, "password": {"wrong"}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid username or password.")
	})

	t.Run("next is honoured when local", func(t *testing.T) {
		rec := app.browser().postForm("/login/", url.Values{
			"username": {"alice"}, "password": {testPassword}, "next": {"/cart/"},
		})
		assert.Equal(t, "/cart/", rec.Header().Get(echo.HeaderLocation))

		rec = app.browser().postForm("/login/", url.Values{
			"username": {"alice"}, "password": {testPassword}, "next": {"//evil.example"},
		})
		assert.Equal(t, "/dashboard/", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("logout cycles the session", func(t *testing.T) {
		b := app.browser()
		b.login(t, "alice")
		loggedIn := b.cookies["sessionid"].Value

		rec := b.postForm("/logout/", nil)
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
		assert.NotEqual(t, loggedIn, b.cookies["sessionid"].Value)

		rec = b.get("/")
		assert.Contains(t, rec.Body.String(), "You have successfully logged out.")
		assert.Contains(t, rec.Body.String(), `href="/login/"`)

		rec = b.get("/dashboard/")
		assert.Equal(t, http.StatusFound, rec.Code)
	})
}

func TestMedia_NotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.browser().get("/media/products/missing.png")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTamperedSessionCookieStartsFresh(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	b.cookies["sessionid"] = &http.Cookie{Name: "sessionid", Value: "not-a-token"}

	rec := b.get("/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<span class="badge bg-danger">0</span>`)
}
