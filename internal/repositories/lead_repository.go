package repositories

import (
	"context"
	"errors"
	"time"

	"crm-backend/internal/models"
	"crm-backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrInvalidID is returned for identifiers that are not valid object ids.
var ErrInvalidID = errors.New("invalid id")

type LeadRepository struct {
	coll *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{coll: db.Collection(store.CollLeads)}
}

func (r *LeadRepository) Create(ctx context.Context, l *models.Lead) error {
	now := time.Now()
	if l.Status == "" {
		l.Status = models.LeadStatusNew
	}
	l.Update = models.UpdateStamp(now)
	l.CreatedAt = models.TimestampNow(now)

	res, err := r.coll.InsertOne(ctx, l)
	if err != nil {
		return err
	}
	l.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var lead models.Lead
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// List returns all leads, or only those assigned to assignedTo when non-empty.
func (r *LeadRepository) List(ctx context.Context, assignedTo string) ([]*models.Lead, error) {
	filter := bson.M{}
	if assignedTo != "" {
		filter["assigned_to"] = assignedTo
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var leads []*models.Lead
	if err := cur.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// Update applies the given storage field set to one lead.
func (r *LeadRepository) Update(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
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

// DeleteMany removes the given leads and returns the deleted count.
func (r *LeadRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids, err := toObjectIDs(ids)
	if err != nil {
		return 0, err
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AssignMany sets assigned_to on the given leads and returns the modified count.
func (r *LeadRepository) AssignMany(ctx context.Context, ids []string, salesPersonID string) (int64, error) {
	oids, err := toObjectIDs(ids)
	if err != nil {
		return 0, err
	}

	res, err := r.coll.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": oids}}, bson.M{
		"$set": bson.M{
			"assigned_to": salesPersonID,
			"updated_at":  models.TimestampNow(time.Now()),
		},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// FindByIDs returns the leads matching the given identifiers.
func (r *LeadRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Lead, error) {
	oids, err := toObjectIDs(ids)
	if err != nil {
		return nil, err
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var leads []*models.Lead
	if err := cur.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// UnassignAll clears the assignment on every lead owned by userID.
func (r *LeadRepository) UnassignAll(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, bson.M{"assigned_to": userID}, bson.M{
		"$set": bson.M{"assigned_to": nil, "updated_at": models.TimestampNow(time.Now())},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SumByAssignee totals price_paid and invoice_billed over the account's
// assigned leads, treating absent fields as zero.
func (r *LeadRepository) SumByAssignee(ctx context.Context, userID string) (price float64, billed float64, err error) {
	cur, err := r.coll.Find(ctx, bson.M{"assigned_to": userID})
	if err != nil {
		return 0, 0, err
	}
	defer cur.Close(ctx)

	var leads []*models.Lead
	if err := cur.All(ctx, &leads); err != nil {
		return 0, 0, err
	}
	for _, l := range leads {
		price += l.PricePaid
		billed += l.InvoiceBilled
	}
	return price, billed, nil
}

func toObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, ErrInvalidID
		}
		oids = append(oids, oid)
	}
	return oids, nil
}
