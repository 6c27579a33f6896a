// Package tele reports kiosk state, errors and purchases to remote server.
package tele

import (
	"context"
	"time"

	"github.com/duernstein/selfcheckout/helpers"
	"github.com/duernstein/selfcheckout/log2"
	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
	"github.com/temoto/spq"
)

const (
	defaultStateInterval  = 5 * time.Minute
	DefaultNetworkTimeout = 30 * time.Second
	retryDelay            = 3 * time.Second
)

const logMsgDisabled = "tele disabled"

type Transporter interface {
	Init(ctx context.Context, log *log2.Log, teleConfig Config, willPayload []byte) error
	Close()
	SendState(payload []byte) bool
	SendTelemetry(payload []byte) bool
}

// Tele contract:
//   - Init() fails only with invalid config, network issues ignored
//   - State/Error/Transaction block at most for disk write,
//     messages are delivered in background
//   - Telemetry delivered at least once, state may be lost
type Tele struct { //nolint:maligned
	enabled       bool
	log           *log2.Log
	transport     Transporter
	q             *spq.Queue
	stateCh       chan State
	stopCh        chan struct{}
	kioskId       int32
	buildVersion  string
	stateInterval time.Duration
}

var _ Teler = &Tele{}

func (self *Tele) Init(ctx context.Context, log *log2.Log, teleConfig Config) error {
	self.enabled = teleConfig.Enabled
	self.log = log.Clone(log2.LInfo)
	if teleConfig.LogDebug {
		self.log.SetLevel(log2.LDebug)
	}
	if !self.enabled {
		return nil
	}

	self.stopCh = make(chan struct{})
	self.stateCh = make(chan State, 4)
	self.kioskId = int32(teleConfig.KioskId)
	self.buildVersion = teleConfig.BuildVersion
	self.stateInterval = helpers.IntSecondDefault(teleConfig.StateIntervalSec, defaultStateInterval)

	if teleConfig.PersistPath == "" {
		return errors.NotValidf("tele enabled but persist path=empty")
	}
	var err error
	self.q, err = spq.Open(teleConfig.PersistPath)
	if err != nil {
		return errors.Annotate(err, "tele queue")
	}

	willPayload := []byte{byte(State_Disconnected)}
	// test code sets .transport
	if self.transport == nil {
		self.transport = &transportMqtt{}
	}
	if err := self.transport.Init(ctx, self.log, teleConfig, willPayload); err != nil {
		return errors.Annotate(err, "tele transport")
	}

	go self.qworker()
	go self.stateWorker()
	self.State(State_Boot)
	return nil
}

func (self *Tele) Close() {
	if !self.enabled {
		return
	}
	close(self.stopCh)
	if err := self.q.Close(); err != nil {
		self.log.Errorf("tele queue close err=%v", err)
	}
	self.transport.Close()
}

func (self *Tele) State(s State) {
	if !self.enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}
	self.log.Infof("tele.State s=%v", s)
	select {
	case self.stateCh <- s:
	default:
		self.log.Errorf("tele state=%v dropped, worker busy", s)
	}
}

func (self *Tele) Error(e error) {
	if !self.enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}
	self.log.Errorf("tele.Error e=%v", e)
	tmerr := Telemetry_Error{Message: e.Error(), Count: 1}
	if err := self.qpushTelemetry(&Telemetry{Error: &tmerr}); err != nil {
		self.log.Errorf("CRITICAL qpushTelemetry telemetry_error=%#v err=%v", tmerr, err)
	}
}

func (self *Tele) Transaction(tx Telemetry_Transaction) {
	if !self.enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}
	self.log.Infof("tele.Transaction %s", tx.String())
	if err := self.qpushTelemetry(&Telemetry{Transaction: &tx}); err != nil {
		self.log.Errorf("CRITICAL qpushTelemetry tx=%#v err=%v", tx, err)
	}
}

func (self *Tele) stateWorker() {
	const retryInterval = 17 * time.Second
	var b [1]byte
	var sent bool
	tmrRegular := time.NewTicker(self.stateInterval)
	tmrRetry := time.NewTicker(retryInterval)
	defer tmrRegular.Stop()
	defer tmrRetry.Stop()
	for {
		select {
		case next := <-self.stateCh:
			if next != State(b[0]) {
				b[0] = byte(next)
				sent = self.transport.SendState(b[:])
			}

		case <-tmrRegular.C:
			if b[0] != 0 {
				sent = self.transport.SendState(b[:])
			}

		case <-tmrRetry.C:
			if !sent && b[0] != 0 {
				sent = self.transport.SendState(b[:])
			}

		case <-self.stopCh:
			return
		}
	}
}

func (self *Tele) qworker() {
	for {
		box, err := self.q.Peek()
		switch err {
		case nil:
			b := box.Bytes()
			if self.qhandle(b) {
				err = self.q.Delete(box)
			} else {
				// keep order fair for other messages, retry later
				err = self.q.DeletePush(box)
				select {
				case <-time.After(retryDelay):
				case <-self.stopCh:
					return
				}
			}
			if err != nil && err != spq.ErrClosed {
				self.log.Errorf("tele queue b=%x err=%v", b, err)
			}

		case spq.ErrClosed:
			select {
			case <-self.stopCh: // success path
			default:
				self.log.Errorf("CRITICAL tele spq closed unexpectedly")
			}
			return

		default:
			self.log.Errorf("CRITICAL tele spq err=%v", err)
			select {
			case <-time.After(retryDelay):
			case <-self.stopCh:
				return
			}
		}
	}
}

// denote value type in persistent queue bytes form
const (
	qTelemetry byte = 2
)

// qhandle returns true when message is done with, delivered or undecodable.
func (self *Tele) qhandle(b []byte) bool {
	if len(b) == 0 {
		self.log.Errorf("tele spq peek=empty")
		return true
	}
	switch b[0] {
	case qTelemetry:
		var tm Telemetry
		if err := proto.Unmarshal(b[1:], &tm); err != nil {
			self.log.Errorf("tele qhandle b=%x err=%v", b, err)
			return true
		}
		payload, err := proto.Marshal(&tm)
		if err != nil {
			self.log.Errorf("CRITICAL telemetry Marshal tm=%#v err=%v", tm, err)
			return true // retry will not help
		}
		return self.transport.SendTelemetry(payload)
	}
	self.log.Errorf("tele qhandle unknown kind=%d", b[0])
	return true
}

func (self *Tele) qpushTelemetry(tm *Telemetry) error {
	if tm.KioskId == 0 {
		tm.KioskId = self.kioskId
	}
	if tm.Time == 0 {
		tm.Time = time.Now().UnixNano()
	}
	tm.BuildVersion = self.buildVersion
	buf := proto.NewBuffer(make([]byte, 0, 256))
	if err := buf.EncodeVarint(uint64(qTelemetry)); err != nil {
		return err
	}
	if err := buf.Marshal(tm); err != nil {
		return err
	}
	return self.q.Push(buf.Bytes())
}
