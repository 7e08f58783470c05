package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"crm-backend/internal/models"
	"crm-backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateEmail is returned when the unique email index rejects an insert.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrNotFound is returned when a well-formed identifier matches no document.
var ErrNotFound = errors.New("not found")

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(store.CollAccounts)}
}

func (r *AccountRepository) Create(ctx context.Context, a *models.Account) error {
	a.Email = strings.ToLower(a.Email)
	if a.Role == "" {
		a.Role = models.RoleSales
	}
	if a.Status == "" {
		a.Status = models.StatusActive
	}
	if a.CreatedAt == "" {
		a.CreatedAt = models.TimestampNow(time.Now())
	}

	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		if store.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var account models.Account
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// List returns all accounts
func (r *AccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var accounts []*models.Account
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListSalespeople returns accounts that can own leads (sales and admin roles).
func (r *AccountRepository) ListSalespeople(ctx context.Context) ([]*models.Account, error) {
	cur, err := r.coll.Find(ctx, bson.M{"role": bson.M{"$in": []string{models.RoleSales, models.RoleAdmin}}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var accounts []*models.Account
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Update applies the given field set to one account.
func (r *AccountRepository) Update(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		if store.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// StampLastLogin records the human-readable last-login marker.
func (r *AccountRepository) StampLastLogin(ctx context.Context, id primitive.ObjectID, stamp string) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login": stamp}})
	return err
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
