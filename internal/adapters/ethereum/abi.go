package ethereum

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// todoListABI is the interface of the deployed TodoList contract
const todoListABI = `[
  {"type":"function","name":"getAllTasks","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"tuple[]","internalType":"struct TodoList.Task[]","components":[
     {"name":"ipfsHash","type":"string","internalType":"string"},
     {"name":"isCompleted","type":"bool","internalType":"bool"},
     {"name":"createdAt","type":"uint256","internalType":"uint256"}]}]},
  {"type":"function","name":"createTask","stateMutability":"nonpayable",
   "inputs":[{"name":"_ipfsHash","type":"string","internalType":"string"}],"outputs":[]},
  {"type":"function","name":"completeTask","stateMutability":"nonpayable",
   "inputs":[{"name":"_index","type":"uint256","internalType":"uint256"}],"outputs":[]},
  {"type":"function","name":"deleteTask","stateMutability":"nonpayable",
   "inputs":[{"name":"_index","type":"uint256","internalType":"uint256"}],"outputs":[]},
  {"type":"event","name":"TaskCreated","anonymous":false,"inputs":[
   {"name":"index","type":"uint256","indexed":false,"internalType":"uint256"},
   {"name":"ipfsHash","type":"string","indexed":false,"internalType":"string"}]}
]`

const (
	methodGetAllTasks  = "getAllTasks"
	methodCreateTask   = "createTask"
	methodCompleteTask = "completeTask"
	methodDeleteTask   = "deleteTask"
)

// contractTask mirrors the TodoList.Task tuple
type contractTask struct {
	IpfsHash    string
	IsCompleted bool
	CreatedAt   *big.Int
}

var todoList = mustParseABI(todoListABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic("invalid TodoList ABI: " + err.Error())
	}
	return parsed
}
