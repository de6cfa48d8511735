package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zeyang/login-system/internal/core/domain"
)

const authLogsCollection = "auth_logs"

// AuditRepository implements ports.AuditRepository on the auth_logs
// collection. Entries are append-only; nothing here updates or deletes.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(authLogsCollection)}
}

// EnsureIndexes creates the account and created_at indexes used by the
// query paths.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}
	return nil
}

type authLogDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AccountID string             `bson:"account_id"`
	Action    string             `bson:"action"`
	IPAddress string             `bson:"ip_address"`
	UserAgent string             `bson:"user_agent,omitempty"`
	Location  string             `bson:"location,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *authLogDoc) toDomain() domain.AuthLog {
	return domain.AuthLog{
		ID:        d.ID.Hex(),
		AccountID: d.AccountID,
		Action:    domain.AuthAction(d.Action),
		IPAddress: d.IPAddress,
		UserAgent: d.UserAgent,
		Location:  d.Location,
		CreatedAt: d.CreatedAt,
	}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuthLog) error {
	doc := authLogDoc{
		AccountID: entry.AccountID,
		Action:    string(entry.Action),
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		Location:  entry.Location,
		CreatedAt: entry.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth log: %w", err)
	}
	return nil
}

func (r *AuditRepository) FindByAccount(ctx context.Context, accountID string) ([]domain.AuthLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"account_id": accountID}, opts)
}

func (r *AuditRepository) FindByTimeRange(ctx context.Context, start, end time.Time) ([]domain.AuthLog, error) {
	filter := bson.M{"created_at": bson.M{"$gte": start, "$lte": end}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *AuditRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.AuthLog, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find auth logs: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.AuthLog
	for cur.Next(ctx) {
		var doc authLogDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode auth log: %w", err)
		}
		entries = append(entries, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate auth logs: %w", err)
	}
	return entries, nil
}
