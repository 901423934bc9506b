package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/ports"
)

const collectionReservations = "reservations"

// ReservationRepository implements ports.ReservationRepository using MongoDB.
type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionReservations)}
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	reservation.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *ReservationRepository) FindByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var reservation domain.Reservation
	if err := r.col.FindOne(ctx, bson.M{"code": code}).Decode(&reservation); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepository) List(ctx context.Context, input ports.ListReservationsInput) ([]*domain.Reservation, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if input.Username != "" {
		filter["username"] = input.Username
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((input.Page - 1) * input.Limit)).
		SetLimit(int64(input.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var reservations []*domain.Reservation
	for cursor.Next(ctx) {
		var reservation domain.Reservation
		if err := cursor.Decode(&reservation); err != nil {
			return nil, 0, err
		}
		reservations = append(reservations, &reservation)
	}
	return reservations, total, cursor.Err()
}

// ReservedSeatIDs returns every seat id already booked for the showtime.
func (r *ReservationRepository) ReservedSeatIDs(ctx context.Context, showtimeID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"seat_ids": 1})
	cursor, err := r.col.Find(ctx, bson.M{"showtime_id": showtimeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var seatIDs []string
	for cursor.Next(ctx) {
		var doc struct {
			SeatIDs []string `bson:"seat_ids"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		seatIDs = append(seatIDs, doc.SeatIDs...)
	}
	return seatIDs, cursor.Err()
}

func (r *ReservationRepository) Delete(ctx context.Context, code string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"code": code})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes reservation lookups rely on.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "showtime_id", Value: 1}}},
		{Keys: bson.D{{Key: "username", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
