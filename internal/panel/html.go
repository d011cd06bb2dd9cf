package panel

// panelHTML is the single-page debug panel. It subscribes to /events and
// drives the intercept queues through the forward/skip endpoints.
const panelHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>deskloop panel</title>
<style>
*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}
html,body{height:100%;background:#050607;color:#d6dde8;font-family:Consolas,'Courier New',monospace;font-size:13px;color-scheme:dark}
#L{display:flex;height:100vh;padding:6px;gap:6px}
.col{flex:1;display:flex;flex-direction:column;gap:6px;padding:14px;overflow-y:auto;background:#0b0d12;border:1px solid #1b2330;border-radius:8px}
h1{font-size:15px;color:#7aa2ff;text-align:center;padding:8px 0;letter-spacing:1.5px}
.l{color:#7a8398;font-size:10px;text-transform:uppercase;letter-spacing:.8px;padding:3px 0}
#status{padding:8px 12px;border-radius:6px;font-size:11px;font-weight:600;background:#0a0d12;color:#7a8398;border:1px solid #0a0e14}
#status.busy{background:#0b1020;color:#9ab6ff}
textarea{width:100%;background:#070a10;color:#d6dde8;border:1px solid #1b2330;padding:10px;font:inherit;font-size:11px;line-height:1.55;resize:vertical;border-radius:6px;min-height:60px}
textarea:focus{outline:none;border-color:#476bff}
button{padding:7px 16px;background:#141c2a;color:#d6dde8;border:1px solid #1b2330;font:inherit;font-size:11px;font-weight:700;cursor:pointer;border-radius:5px}
button:disabled{background:#0b0f16;color:#3a4256;cursor:not-allowed}
button:hover:not(:disabled){background:#1b2536;border-color:#476bff}
.r{display:flex;gap:5px;align-items:center;flex-wrap:wrap}
#story{background:#070a10;border:1px solid #0a0e14;border-radius:6px;padding:10px;white-space:pre-wrap;word-break:break-word;max-height:120px;overflow-y:auto;font-size:11px;color:#a6b0c6}
#shot{max-width:100%;border:1px solid #1b2330;border-radius:6px;background:#000}
#turn{color:#9ab6ff;font-weight:700}
</style>
</head>
<body>
<div id="L">
  <div class="col">
    <h1>DESKLOOP PANEL</h1>
    <div id="status">idle</div>
    <div class="r"><span class="l">turn</span><span id="turn">0</span><span class="l" id="mdl"></span></div>
    <div class="l">story</div>
    <div id="story"></div>
    <div class="l">screenshot</div>
    <img id="shot" alt="">
    <div class="l">request body (image stripped)</div>
    <textarea id="reqbody" rows="8"></textarea>
    <div class="r">
      <button id="fwd" disabled>Forward to upstream</button>
    </div>
    <div class="l">manual reply (skips upstream)</div>
    <textarea id="manual" rows="4" placeholder="NARRATIVE:&#10;...&#10;&#10;ACTIONS:&#10;screenshot()"></textarea>
    <div class="r">
      <button id="skip" disabled>Answer by hand</button>
    </div>
  </div>
  <div class="col">
    <div class="l">assistant content</div>
    <textarea id="assistant" rows="8"></textarea>
    <div class="l">raw response body</div>
    <textarea id="respbody" rows="8"></textarea>
    <div class="r">
      <button id="ret" disabled>Return to loop</button>
    </div>
  </div>
</div>
<script>
function post(u,o){return fetch(u,{method:"POST",headers:{"Content-Type":"application/json"},body:JSON.stringify(o)}).then(r=>{if(!r.ok)throw Error("HTTP "+r.status);return r.json()})}
const $=id=>document.getElementById(id);
let shotB64="";
function setStatus(t,busy){$("status").textContent=t;$("status").className=busy?"busy":"";}
const es=new EventSource("/events");
es.addEventListener("incoming_request",e=>{
  const d=JSON.parse(e.data);
  $("turn").textContent=d.turn;$("mdl").textContent=d.model;
  $("story").textContent=d.story;shotB64=d.screenshot_b64;
  $("shot").src=shotB64?"data:image/png;base64,"+shotB64:"";
  $("reqbody").value=d.raw_body_stripped;
  $("fwd").disabled=false;$("skip").disabled=false;$("ret").disabled=true;
  setStatus("request intercepted",true);
});
es.addEventListener("forwarding",()=>{setStatus("forwarding to upstream",true);$("fwd").disabled=true;$("skip").disabled=true;});
es.addEventListener("incoming_response",e=>{
  const d=JSON.parse(e.data);
  $("assistant").value=d.assistant_content;$("respbody").value=d.raw_body;
  $("ret").disabled=false;
  setStatus("response intercepted (HTTP "+d.status+")",true);
});
es.addEventListener("turn_complete",e=>{
  const d=JSON.parse(e.data);
  $("fwd").disabled=true;$("skip").disabled=true;$("ret").disabled=true;
  setStatus("turn "+d.turn+" complete ("+d.mode+")",false);
});
$("fwd").onclick=()=>post("/forward_request",{raw_body_stripped:$("reqbody").value,canvas_b64:shotB64}).catch(alert);
$("skip").onclick=()=>post("/skip_upstream",{content:$("manual").value}).catch(alert);
$("ret").onclick=()=>{
  let body=$("respbody").value;
  const edited=$("assistant").value;
  try{
    const o=JSON.parse(body);
    if(o.choices&&o.choices[0]&&o.choices[0].message){o.choices[0].message.content=edited;body=JSON.stringify(o);}
  }catch(err){}
  post("/forward_response",{raw_body:body}).catch(alert);
};
</script>
</body>
</html>
`
