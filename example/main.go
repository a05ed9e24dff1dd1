package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/theflywheel/longmap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Create a table that reports its resizes
	m, err := longmap.New[int64](longmap.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create map: %v", err)
	}

	fmt.Printf("Map created: %v\n", m)

	// Insert some data, enough to grow past the default threshold of 12
	for i := int64(0); i < 20; i++ {
		m.Put(i, i*100)
	}

	fmt.Printf("Inserted 20 key-value pairs: %v\n", m)

	// Retrieve and display some values
	for i := int64(0); i < 30; i += 4 {
		if v, found := m.Get(i); found {
			fmt.Printf("Key %d => Value %d\n", i, v)
		} else {
			fmt.Printf("Key %d not found\n", i)
		}
	}

	// Update a value
	old, _ := m.Put(2, 999)
	v, _ := m.Get(2)
	fmt.Printf("Updated key 2 => Value %d (was %d)\n", v, old)

	// Remove a value
	if v, removed := m.Remove(4); removed {
		fmt.Printf("Removed key 4 (value %d), %d entries left\n", v, m.Size())
	}

	// Snapshots of keys and values are taken in slot order
	keys, values := m.Keys(), m.Values()
	for i := range keys[:5] {
		fmt.Printf("Slot-ordered entry %d: %d => %d\n", i, keys[i], values[i])
	}

	fmt.Println("Example completed successfully")
}
