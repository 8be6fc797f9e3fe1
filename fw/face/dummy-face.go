package face

import (
	"sync"

	"github.com/named-data/ndnfw/fw/defn"
)

// SentInterest is an Interest recorded by a DummyFace.
type SentInterest struct {
	Interest *defn.Interest
	Endpoint uint64
}

// SentData is a Data recorded by a DummyFace.
type SentData struct {
	Data     *defn.Data
	Endpoint uint64
}

// SentNack is a Nack recorded by a DummyFace.
type SentNack struct {
	Nack     *defn.Nack
	Endpoint uint64
}

// DummyFace records everything sent to it and lets callers inject received packets.
type DummyFace struct {
	faceBase

	lock      sync.Mutex
	interests []SentInterest
	data      []SentData
	nacks     []SentNack
}

func NewDummyFace(scope defn.Scope, linkType defn.LinkType) *DummyFace {
	f := &DummyFace{}
	f.init(scope, linkType)
	return f
}

func (f *DummyFace) String() string {
	return f.describe("dummy-face")
}

func (f *DummyFace) SendInterest(interest *defn.Interest, endpoint uint64) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.interests = append(f.interests, SentInterest{interest, endpoint})
}

func (f *DummyFace) SendData(data *defn.Data, endpoint uint64) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.data = append(f.data, SentData{data, endpoint})
}

func (f *DummyFace) SendNack(nack *defn.Nack, endpoint uint64) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.nacks = append(f.nacks, SentNack{nack, endpoint})
}

// ReceiveInterest injects an Interest as if it arrived on the face.
func (f *DummyFace) ReceiveInterest(interest *defn.Interest, endpoint uint64) {
	f.events.Interest.Emit(InterestEvent{interest, endpoint})
}

// ReceiveData injects a Data as if it arrived on the face.
func (f *DummyFace) ReceiveData(data *defn.Data, endpoint uint64) {
	f.events.Data.Emit(DataEvent{data, endpoint})
}

// ReceiveNack injects a Nack as if it arrived on the face.
func (f *DummyFace) ReceiveNack(nack *defn.Nack, endpoint uint64) {
	f.events.Nack.Emit(NackEvent{nack, endpoint})
}

// DropInterest reports an Interest the face failed to transmit.
func (f *DummyFace) DropInterest(interest *defn.Interest, endpoint uint64) {
	f.events.DroppedInterest.Emit(InterestEvent{interest, endpoint})
}

func (f *DummyFace) SentInterests() []SentInterest {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]SentInterest(nil), f.interests...)
}

func (f *DummyFace) SentData() []SentData {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]SentData(nil), f.data...)
}

func (f *DummyFace) SentNacks() []SentNack {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]SentNack(nil), f.nacks...)
}

// Reset forgets all recorded packets.
func (f *DummyFace) Reset() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.interests = nil
	f.data = nil
	f.nacks = nil
}
