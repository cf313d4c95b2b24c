package ballot

// Descriptor is the ABI of the deployed voting contract
const Descriptor = `[
  {"inputs": [], "stateMutability": "nonpayable", "type": "constructor"},
  {"inputs": [{"internalType": "string", "name": "name", "type": "string"}],
   "name": "addCandidate", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "_proposalId", "type": "uint256"}],
   "name": "vote", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [], "name": "getWinner",
   "outputs": [{"internalType": "string", "name": "", "type": "string"}],
   "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "owner",
   "outputs": [{"internalType": "address", "name": "", "type": "address"}],
   "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "proposalCount",
   "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
   "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "name": "proposal",
   "outputs": [
     {"internalType": "string", "name": "name", "type": "string"},
     {"internalType": "uint256", "name": "voteCount", "type": "uint256"}
   ],
   "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "address", "name": "", "type": "address"}], "name": "hasVote",
   "outputs": [{"internalType": "bool", "name": "", "type": "bool"}],
   "stateMutability": "view", "type": "function"}
]`
