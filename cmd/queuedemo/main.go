// Demo program: producer goroutines marshal records into shared
// buffers, hand them through a wait queue, and consumer goroutines
// unmarshall and log them. Shutdown is a graceful close of the queue
// once the producers finish.
package main

import (
	"flag"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/connectivecpp/utility-rack/marshall"
	"github.com/connectivecpp/utility-rack/waitq"
)

var (
	producers = flag.Int("producers", 3, "number of producer goroutines")
	consumers = flag.Int("consumers", 2, "number of consumer goroutines")
	messages  = flag.Int("messages", 20, "records generated per producer")
	interval  = flag.Duration("interval", 2*time.Millisecond, "delay between records")
)

// record is the wire payload exchanged between producers and consumers.
type record struct {
	Source uint16
	Seq    uint32
	Text   string
}

func (r record) MarshallTo(b marshall.Buffer) marshall.Buffer {
	b = marshall.Marshall[uint16](b, r.Source)
	b = marshall.Marshall[uint32](b, r.Seq)
	return marshall.MarshallString[uint16](b, r.Text)
}

func (r *record) UnmarshallFrom(c *marshall.Cursor) {
	r.Source = marshall.Unmarshall[uint16](c)
	r.Seq = marshall.Unmarshall[uint32](c)
	r.Text = marshall.UnmarshallString[uint16](c)
}

func produce(log *zap.Logger, wq *waitq.Queue[marshall.ConstSharedBuffer], source int) {
	for seq := 0; seq < *messages; seq++ {
		rec := record{
			Source: uint16(source),
			Seq:    uint32(seq),
			Text:   fmt.Sprintf("reading %d from device %d", seq, source),
		}
		buf := marshall.NewMutableSharedBuffer()
		rec.MarshallTo(buf)
		if !wq.Push(buf.IntoConst()) {
			log.Warn("queue closed while producing", zap.Int("source", source))
			return
		}
		time.Sleep(*interval)
	}
	log.Info("producer finished", zap.Int("source", source))
}

func consume(log *zap.Logger, wq *waitq.Queue[marshall.ConstSharedBuffer], id int, delivered *int, mu *sync.Mutex) {
	for {
		buf, ok := wq.WaitPop()
		if !ok {
			log.Info("consumer shutting down", zap.Int("consumer", id))
			return
		}
		var rec record
		rec.UnmarshallFrom(marshall.NewCursor(buf.Data()))
		log.Info("received",
			zap.Int("consumer", id),
			zap.Uint16("source", rec.Source),
			zap.Uint32("seq", rec.Seq),
			zap.String("text", rec.Text),
			zap.Int("wire_bytes", buf.Size()),
		)
		mu.Lock()
		*delivered++
		mu.Unlock()
	}
}

func main() {
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	wq := waitq.New[marshall.ConstSharedBuffer]()

	var delivered int
	var mu sync.Mutex

	var consWG sync.WaitGroup
	for id := 0; id < *consumers; id++ {
		consWG.Add(1)
		go func(id int) {
			defer consWG.Done()
			consume(log, wq, id, &delivered, &mu)
		}(id)
	}

	var prodWG sync.WaitGroup
	for source := 0; source < *producers; source++ {
		prodWG.Add(1)
		go func(source int) {
			defer prodWG.Done()
			produce(log, wq, source)
		}(source)
	}

	prodWG.Wait()
	// consumers drain whatever remains, then observe the close
	wq.Close()
	consWG.Wait()

	log.Info("all done",
		zap.Int("expected", *producers**messages),
		zap.Int("delivered", delivered),
	)
}
