package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	ticketDomain "github.com/davicafu/eventix/internal/ticket/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// TicketRepoMongoDB implementa la interfaz TicketRepository para MongoDB.
type TicketRepoMongoDB struct {
	client      *mongo.Client
	dbName      string
	ticketsColl *mongo.Collection
}

// NewTicketRepoMongoDB es el constructor del repositorio.
func NewTicketRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*TicketRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &TicketRepoMongoDB{
		client:      client,
		dbName:      dbName,
		ticketsColl: db.Collection("tickets"),
	}, nil
}

// --- Structs de BSON para el mapeo ---

type mongoTicket struct {
	ID           string    `bson:"_id"`
	CustomerName string    `bson:"customerName"`
	CPF          string    `bson:"cpf"`
	CustomerMail string    `bson:"customerMail"`
	EventID      string    `bson:"eventId"`
	EventName    string    `bson:"eventName"`
	BRLAmount    float64   `bson:"brlAmount"`
	USDAmount    float64   `bson:"usdAmount"`
	Status       string    `bson:"status"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// --- CRUD ---

func (r *TicketRepoMongoDB) Create(ctx context.Context, t *ticketDomain.Ticket) error {
	_, err := r.ticketsColl.InsertOne(ctx, toMongoTicket(t))
	return err
}

func (r *TicketRepoMongoDB) GetByID(ctx context.Context, id string) (*ticketDomain.Ticket, error) {
	var mt mongoTicket
	err := r.ticketsColl.FindOne(ctx, bson.M{"_id": id}).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ticketDomain.ErrTicketNotFound
		}
		return nil, err
	}
	return fromMongoTicket(&mt)
}

func (r *TicketRepoMongoDB) Update(ctx context.Context, t *ticketDomain.Ticket) error {
	mt := toMongoTicket(t)
	res, err := r.ticketsColl.UpdateOne(ctx, bson.M{"_id": mt.ID}, bson.M{"$set": mt})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ticketDomain.ErrTicketNotFound
	}
	return nil
}

// ExistsByEventID cuenta como mucho un documento: solo interesa si hay
// alguno, en cualquier estado.
func (r *TicketRepoMongoDB) ExistsByEventID(ctx context.Context, eventID uuid.UUID) (bool, error) {
	count, err := r.ticketsColl.CountDocuments(ctx,
		bson.M{"eventId": eventID.String()},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// --- Helpers de Mapeo y Conversión ---

func toMongoTicket(t *ticketDomain.Ticket) *mongoTicket {
	return &mongoTicket{
		ID: t.TicketID, CustomerName: t.CustomerName, CPF: t.CPF, CustomerMail: t.CustomerMail,
		EventID: t.EventID.String(), EventName: t.EventName,
		BRLAmount: t.BRLAmount, USDAmount: t.USDAmount,
		Status: string(t.Status), CreatedAt: t.CreatedAt,
	}
}

func fromMongoTicket(mt *mongoTicket) (*ticketDomain.Ticket, error) {
	eventID, err := uuid.Parse(mt.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id %q: %w", mt.EventID, err)
	}
	return &ticketDomain.Ticket{
		TicketID: mt.ID, CustomerName: mt.CustomerName, CPF: mt.CPF, CustomerMail: mt.CustomerMail,
		EventID: eventID, EventName: mt.EventName,
		BRLAmount: mt.BRLAmount, USDAmount: mt.USDAmount,
		Status: ticketDomain.TicketStatus(mt.Status), CreatedAt: mt.CreatedAt,
	}, nil
}
