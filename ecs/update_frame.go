package ecs

// UpdateFrame is handed to every system during one scheduler pass.
type UpdateFrame struct {
	// DeltaTime is the wall-clock time in seconds since the previous pass.
	DeltaTime float64
	// Index counts passes, starting at zero.
	Index    uint64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, index uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Index:     index,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
