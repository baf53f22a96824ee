package flow

import (
	"clientreg/internal/ports"
	"clientreg/internal/types"
	"context"
	"errors"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// Request is one user action with the raw form values that came with it.
// ID is used by update and deactivate, Filter by list.
type Request struct {
	Action types.Action       `json:"-"`
	ID     int                `json:"id,omitempty"`
	Fields types.ClientFields `json:"fields"`
	Filter string             `json:"filter,omitempty"`
}

// Result is what the presentation layer needs to render after an action.
type Result struct {
	Action  types.Action         `json:"-"`
	Status  Status               `json:"-"`
	Notice  *types.Notice        `json:"notice,omitempty"`
	Record  *types.ClientRecord  `json:"client,omitempty"`
	Records []types.ClientRecord `json:"clients,omitempty"`
}

// ChangeEvent is published after every successful mutation.
type ChangeEvent struct {
	Action  string             `json:"action"`
	Session string             `json:"session,omitempty"`
	Client  types.ClientRecord `json:"client"`
	At      int64              `json:"at"`
}

// Dispatcher maps a UI action to exactly one store operation.
type Dispatcher struct {
	Store   ports.ClientStore
	Pub     ports.Publisher
	Topic   string
	Session string
}

// NewDispatcher wires the store; pub may be nil to skip change events.
func NewDispatcher(store ports.ClientStore, pub ports.Publisher, topic, session string) *Dispatcher {
	return &Dispatcher{
		Store:   store,
		Pub:     pub,
		Topic:   topic,
		Session: session,
	}
}

// Dispatch runs the store operation for req.Action.
// A missing client is reported through Result (status NotFound, error notice), not as an error;
// the returned error is reserved for store failures.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	switch req.Action {
	case types.ActionRegister:
		return d.register(ctx, req.Fields)
	case types.ActionList:
		return d.list(ctx, req.Filter)
	case types.ActionUpdate:
		return d.mutate(ctx, req.Action, req.ID, func() (types.ClientRecord, error) {
			return d.Store.Update(ctx, req.ID, req.Fields)
		})
	case types.ActionDeactivate:
		return d.mutate(ctx, req.Action, req.ID, func() (types.ClientRecord, error) {
			return d.Store.Deactivate(ctx, req.ID)
		})
	case types.ActionInvalid:
		fallthrough
	default:
		return invalidOption(), nil
	}
}

func invalidOption() Result {
	return Result{
		Action: types.ActionInvalid,
		Status: InvalidOption,
		Notice: types.Failure(MsgInvalidOption),
	}
}

func (d *Dispatcher) register(ctx context.Context, fields types.ClientFields) (Result, error) {
	rec, err := d.Store.Register(ctx, fields)
	if err != nil {
		return Result{}, err
	}
	log.WithFields(log.Fields{"client_id": rec.ID, "session": d.Session}).Info("client registered")
	d.publish(ctx, types.ActionRegister, rec)
	return Result{
		Action: types.ActionRegister,
		Status: Registered,
		Notice: types.Success(MsgRegistered),
		Record: &rec,
	}, nil
}

func (d *Dispatcher) list(ctx context.Context, filter string) (Result, error) {
	recs, err := d.Store.List(ctx)
	if err != nil {
		return Result{}, err
	}
	res := Result{Action: types.ActionList, Status: Listed}
	if len(recs) == 0 {
		res.Status = ListedEmpty
		res.Records = []types.ClientRecord{}
		return res, nil
	}
	res.Records, err = FilterRecords(filter, recs)
	if err != nil {
		if errors.Is(err, types.ErrInvalidFilter) {
			return Result{
				Action:  types.ActionList,
				Status:  Rejected,
				Notice:  types.Failure(err.Error()),
				Records: recs,
			}, nil
		}
		return Result{}, err
	}
	return res, nil
}

func (d *Dispatcher) mutate(ctx context.Context, action types.Action, id int, op func() (types.ClientRecord, error)) (Result, error) {
	rec, err := op()
	if errors.Is(err, types.ErrNotFound) {
		log.WithFields(log.Fields{"client_id": id, "action": action.String()}).Debug("client not found")
		return Result{
			Action: action,
			Status: NotFound,
			Notice: types.Failure(MsgNotFound),
		}, nil
	}
	if err != nil {
		return Result{}, err
	}
	res := Result{Action: action, Record: &rec}
	switch action {
	case types.ActionUpdate:
		res.Status = Updated
		res.Notice = types.Success(MsgUpdated)
	case types.ActionDeactivate:
		res.Status = Deactivated
		res.Notice = types.Success(MsgDeactivated)
	}
	log.WithFields(log.Fields{"client_id": rec.ID, "action": action.String(), "session": d.Session}).Info("client changed")
	d.publish(ctx, action, rec)
	return res, nil
}

// publish emits a ChangeEvent. Failures are logged only: the mutation already happened.
func (d *Dispatcher) publish(ctx context.Context, action types.Action, rec types.ClientRecord) {
	if d.Pub == nil || !action.Mutates() {
		return
	}
	b, err := json.Marshal(ChangeEvent{
		Action:  action.String(),
		Session: d.Session,
		Client:  rec,
		At:      EpochTime(),
	})
	if err != nil {
		log.WithError(err).Error("failed to marshal change event")
		return
	}
	if err := d.Pub.PublishRaw(ctx, d.Topic, b); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"client_id": rec.ID,
			"action":    action.String(),
			"topic":     d.Topic,
		}).Warn("failed to publish change event")
	}
}
