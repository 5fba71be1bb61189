package audit

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/adminshop/pkg/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const serviceName = "admin-api"

// Entry is the message sent to the audit actor for every successful
// mutation.
type Entry struct {
	Action   string
	EntityID string
	Data     map[string]interface{}
}

// writerActor serializes audit writes so API handlers never wait on Mongo.
type writerActor struct {
	mongo  *repository.MongoRepository
	logger *zap.Logger
}

func (a *writerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *Entry:
		writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := a.mongo.CreateAuditLog(writeCtx, &repository.AuditLog{
			Service:  serviceName,
			Action:   msg.Action,
			EntityID: msg.EntityID,
			Data:     bson.M(msg.Data),
		})
		if err != nil {
			a.logger.Warn("Failed to write audit log",
				zap.String("action", msg.Action),
				zap.String("entity_id", msg.EntityID),
				zap.Error(err))
		}

	case *actor.Started:
		a.logger.Info("Audit actor started")

	case *actor.Stopping:
		a.logger.Info("Audit actor stopping")

	case *actor.Stopped:
		a.logger.Info("Audit actor stopped")
	}
}

// Recorder is the fire-and-forget front of the audit pipeline. A nil
// Recorder drops entries, which lets the server run without MongoDB.
type Recorder struct {
	system *actor.ActorSystem
	pid    *actor.PID
}

func NewRecorder(mongo *repository.MongoRepository, logger *zap.Logger) (*Recorder, error) {
	system := actor.NewActorSystem()

	props := actor.PropsFromProducer(func() actor.Actor {
		return &writerActor{mongo: mongo, logger: logger.Named("audit-actor")}
	})
	pid, err := system.Root.SpawnNamed(props, "audit-actor")
	if err != nil {
		return nil, err
	}

	return &Recorder{system: system, pid: pid}, nil
}

func (r *Recorder) Record(action, entityID string, data map[string]interface{}) {
	if r == nil {
		return
	}
	r.system.Root.Send(r.pid, &Entry{Action: action, EntityID: entityID, Data: data})
}

func (r *Recorder) Stop() {
	if r == nil {
		return
	}
	r.system.Root.Stop(r.pid)
}
