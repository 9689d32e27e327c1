package api

import (
	"github.com/erdmkk/football-gossip-bot/app/database"
	"github.com/erdmkk/football-gossip-bot/app/tasks"
)

type Handler struct {
	changeRepo database.ChangeRepository
	postRepo   database.PostRepository
	scheduler  tasks.SchedulerInterface
	version    string
}
