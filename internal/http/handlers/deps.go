package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"cabzii/internal/auth"
	intconfig "cabzii/internal/config"
	"cabzii/internal/http/middleware"
	"cabzii/internal/otp"
	"cabzii/internal/repositories"
	"cabzii/internal/services"
	"cabzii/internal/sms"
	"cabzii/internal/storage"
)

// Deps are the process-wide collaborators handlers share: stateful stores
// and external gateways that must not be rebuilt per request. Repositories
// are cheap per-request values over the shared DB handle.
type Deps struct {
	Tokens auth.Manager
	OTP    otp.Store
	SMS    sms.Sender
	Files  *storage.FileStore
}

var (
	depsMu sync.RWMutex
	deps   Deps
)

// Configure installs the shared collaborators. Called once at startup and
// from tests.
func Configure(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	deps = d
}

func getDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

func db() *mongo.Database {
	return intconfig.DB
}

func clientAuthService(c *gin.Context) services.ClientAuthService {
	d := getDeps()
	return services.ClientAuthService{
		Store:     repositories.ClientRepo{DB: db()},
		OTP:       d.OTP,
		SMS:       d.SMS,
		Tokens:    d.Tokens,
		RequestID: middleware.GetRequestID(c),
	}
}

func profileService(c *gin.Context) services.ClientProfileService {
	return services.ClientProfileService{
		Store:     repositories.ClientRepo{DB: db()},
		RequestID: middleware.GetRequestID(c),
	}
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Store:     repositories.ClientRepo{DB: db()},
		RequestID: middleware.GetRequestID(c),
	}
}

func invoiceService(c *gin.Context) services.InvoiceService {
	return services.InvoiceService{
		Bookings:  bookingService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

func adminService(c *gin.Context) services.AdminService {
	d := getDeps()
	return services.AdminService{
		Store:     repositories.AdminRepo{DB: db()},
		Tokens:    d.Tokens,
		RequestID: middleware.GetRequestID(c),
	}
}

func catalogService(c *gin.Context, r services.Resource) services.CatalogService {
	d := getDeps()
	svc := services.CatalogService{
		Resource:  r,
		Store:     repositories.CatalogRepo{DB: db(), Collection: r.Collection},
		Seq:       repositories.CounterRepo{DB: db()},
		RequestID: middleware.GetRequestID(c),
	}
	if d.Files != nil {
		svc.Files = d.Files
	}
	return svc
}
