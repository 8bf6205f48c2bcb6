package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventDomain "github.com/davicafu/eventix/internal/event/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// EventRepoMongoDB implementa la interfaz EventRepository para MongoDB.
type EventRepoMongoDB struct {
	client     *mongo.Client
	dbName     string
	eventsColl *mongo.Collection
}

// NewEventRepoMongoDB es el constructor del repositorio.
func NewEventRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*EventRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &EventRepoMongoDB{
		client:     client,
		dbName:     dbName,
		eventsColl: db.Collection("events"),
	}, nil
}

// --- Structs de BSON para el mapeo ---
// Se definen localmente para no "contaminar" el dominio con tags de BSON.

type mongoEvent struct {
	ID         string    `bson:"_id"`
	EventName  string    `bson:"eventName"`
	DateTime   time.Time `bson:"dateTime"`
	CEP        string    `bson:"cep"`
	Logradouro string    `bson:"logradouro"`
	Bairro     string    `bson:"bairro"`
	Cidade     string    `bson:"cidade"`
	UF         string    `bson:"uf"`
	CreatedAt  time.Time `bson:"createdAt"`
}

// --- CRUD ---

func (r *EventRepoMongoDB) Create(ctx context.Context, e *eventDomain.Event) error {
	_, err := r.eventsColl.InsertOne(ctx, toMongoEvent(e))
	return err
}

func (r *EventRepoMongoDB) GetByID(ctx context.Context, id uuid.UUID) (*eventDomain.Event, error) {
	var me mongoEvent
	err := r.eventsColl.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, eventDomain.ErrEventNotFound
		}
		return nil, err
	}
	return fromMongoEvent(&me)
}

func (r *EventRepoMongoDB) List(ctx context.Context, sortedByName bool) ([]*eventDomain.Event, error) {
	opts := options.Find()
	if sortedByName {
		opts.SetSort(bson.D{{Key: "eventName", Value: 1}})
	}

	cursor, err := r.eventsColl.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*eventDomain.Event
	for cursor.Next(ctx) {
		var me mongoEvent
		if err := cursor.Decode(&me); err != nil {
			return nil, err
		}
		e, err := fromMongoEvent(&me)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, cursor.Err()
}

func (r *EventRepoMongoDB) Update(ctx context.Context, e *eventDomain.Event) error {
	me := toMongoEvent(e)
	res, err := r.eventsColl.UpdateOne(ctx, bson.M{"_id": me.ID}, bson.M{"$set": me})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return eventDomain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepoMongoDB) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.eventsColl.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return eventDomain.ErrEventNotFound
	}
	return nil
}

// --- Helpers de Mapeo y Conversión ---

func toMongoEvent(e *eventDomain.Event) *mongoEvent {
	return &mongoEvent{
		ID: e.ID.String(), EventName: e.EventName, DateTime: e.DateTime, CEP: e.CEP,
		Logradouro: e.Logradouro, Bairro: e.Bairro, Cidade: e.Cidade, UF: e.UF,
		CreatedAt: e.CreatedAt,
	}
}

func fromMongoEvent(me *mongoEvent) (*eventDomain.Event, error) {
	id, err := uuid.Parse(me.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id %q: %w", me.ID, err)
	}
	return &eventDomain.Event{
		ID: id, EventName: me.EventName, DateTime: me.DateTime, CEP: me.CEP,
		Logradouro: me.Logradouro, Bairro: me.Bairro, Cidade: me.Cidade, UF: me.UF,
		CreatedAt: me.CreatedAt,
	}, nil
}
